// Package fluxcast translates one canonical, solver-agnostic description of
// an energy supply network into the native vocabularies of several
// structurally different optimization backends, and reads each backend's
// optimized network back into one uniform result schema.
//
// 🚀 What is fluxcast?
//
//	A deterministic, two-way semantic mapping engine:
//		• core/    — the canonical model: Uid identity scheme, node kinds
//		             (bus, source, sink, transformer, storage, connector),
//		             edges with capacity/cost/emission/expansion parameters
//		• diag/    — append-only diagnostics collector, returned alongside
//		             every translation and extraction run
//		• trans/   — backend-shared mapping helpers: primary-carrier election,
//		             transformer arity rules, capacity normalization
//		• results/ — the uniform result schema and the Resultier contract
//		• busflow/ — backend with a bus/flow vocabulary (richest expressiveness)
//		• gridopt/ — backend with a generator/link/store vocabulary, inverted
//		             sign convention and a zero-starting-capacity expansion model
//		• techloc/ — backend with a technology×location vocabulary, persisted
//		             as a YAML/CSV directory tree
//
// ✨ Why fluxcast?
//
//   - Deterministic – unordered collections are always iterated in
//     lexicographic uid order, so two translations of the same model are
//     structurally identical
//   - Honest about loss – every approximation a backend forces (asymmetric
//     storage efficiency, per-carrier cost collapse, global-only flags)
//     produces a diagnostic; every unsupported shape fails with a typed error
//   - Pure – translation and extraction are side-effect-free functions over
//     immutable in-memory graphs; the only external call is the solver itself,
//     which is out of scope
//
// The forward direction maps canonical components into backend entities in a
// fixed dependency order (buses → connectors → sinks → sources →
// transformers → storages) and resolves whole-network constraints in a final
// consistency pass. The reverse direction reconstructs canonical identities
// from backend-native string names and normalizes loads, capacities, costs,
// emissions and state of charge back to the canonical conventions.
//
// Comparative statistics, plotting and solver invocation are external
// collaborators; they consume the results/ schema and never reach into
// backend-native objects.
package fluxcast
