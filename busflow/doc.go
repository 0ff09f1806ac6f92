// Package busflow implements the forward translator and result extractor
// for the bus/flow backend — the most expressive of the three vocabularies.
//
// Everything in this backend is a component attached to buses through Flow
// parameter records: sources and sinks carry one flow each, converters carry
// one input flow and up to three native per-carrier output flows, storages
// support asymmetric in/out efficiencies and a per-storage cyclic flag, and
// the network accepts a native global emission cap. Connectors map to two
// directional link records sharing the connector's name; no intermediate
// node is required.
//
// Because the vocabulary is rich, translation to busflow is nearly lossless:
// the only diagnostics it emits concern the infinite-capacity normalization
// every backend shares. The backend already uses the canonical sign
// convention (sink inflow negative, source outflow positive), so extraction
// normalizes signs through the same code path as the other backends but the
// transformation is the identity.
//
// Usage:
//
//	net, diags, err := busflow.Translate(es)
//	// hand net to the solver, which attaches net.Solution
//	res, err := busflow.NewResultier(net)
//	loads := res.Loads()
//
// Translation is deterministic: components are mapped in the fixed order
// buses → connectors → sinks → sources → transformers → storages, each group
// sorted lexicographically by uid string.
package busflow
