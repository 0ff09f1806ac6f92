package results

import "github.com/davecgh/go-spew/spew"

// dumpConfig renders deterministic dumps: maps sorted, pointers chased one
// level so Capacity values are readable in test failure output.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump renders v for test-failure and comparison-report output.
func Dump(v interface{}) string {
	return dumpConfig.Sdump(v)
}
