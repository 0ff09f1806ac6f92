// Package techloc implements the forward translator and result extractor
// for the technology × location backend — the one vocabulary of the three
// that also lives on disk.
//
// The backend describes a network as technologies placed at locations:
// supply, demand, conversion and storage techs, plus transmission links
// between location pairs. Canonical buses become locations; every other
// component becomes a tech at its bus's location. Multi-output transformers
// are native conversion techs with secondary-output ratios, but per-carrier
// cost and emission cannot be priced independently and accumulate onto the
// primary carrier with a diagnostic. Storage supports one efficiency only
// (asymmetric pairs collapse to their geometric mean) while the cyclic flag
// is native per tech. The global emission cap is a native model-level
// constraint.
//
// Transmission allows at most one link between any two locations regardless
// of direction, so a bidirectional connector with direction-dependent
// efficiency cannot be two plain opposing links. It maps to two lossy directional links plus one
// zero-loss auxiliary link routed through a synthesized intermediate
// location: A→B carries the forward efficiency directly, the return
// direction runs B→L lossy and L→A lossless. The intermediate location's
// identity is tagged Origin=Synthetic, never inferred from naming, and the
// extractor folds its flows back onto the connector so it appears in no
// result map.
//
// The model persists as a directory of structured text files:
//
//	{root}/Techloc/{model-name}/model.yaml
//	{root}/Techloc/{model-name}/techs.yaml
//	{root}/Techloc/{model-name}/locations.yaml
//	{root}/Techloc/{model-name}/ts_{param}.csv
//
// model.yaml records the on-disk format version (semantic versioning);
// ReadDir rejects files written by an incompatible major version.
package techloc
