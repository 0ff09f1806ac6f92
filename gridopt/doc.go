// Package gridopt implements the forward translator and result extractor
// for the generator/link/store backend — the vocabulary that disagrees with
// the canonical model the most, which makes its mapping the richest in
// documented fallbacks.
//
// Differences this backend forces, and how they are handled:
//
//   - Inverted sign convention: demand is positive here. The resultier
//     renormalizes every load back to the canonical convention (sink inflow
//     negative, source outflow positive).
//   - Zero starting capacity: the expansion model cannot combine "already
//     installed" with "expandable". Installed capacity on an expandable
//     component becomes the minimum expansion bound, the implied capital
//     cost already paid for that minimum is recorded as ObjectiveOffset, and
//     global aggregation subtracts it from the backend objective.
//   - Generator-like collapse: single-output transformers become plain
//     generators on their output bus. An upstream supply chain (source plus
//     dedicated bus) left provably unreachable by the collapse is pruned and
//     its cost and emission re-attributed to the surviving generator,
//     divided by the conversion efficiency, so totals stay conserved.
//     Per-edge rates inside a pruned chain cannot be disambiguated afterwards
//     and extract as zero with a diagnostic.
//   - One global cyclic flag: when canonical storages disagree, the whole
//     network falls back to not-cyclic and a diagnostic names every
//     conflicting storage.
//   - Single storage efficiency: asymmetric pairs collapse to their
//     geometric mean, with a diagnostic.
//   - No emission cap and no CHP concept: a requested cap degrades to a
//     diagnostic; a chp-tagged transformer is a structural error.
//
// Translation order and determinism match the other backends: buses →
// connectors → sinks → sources → transformers → storages, lexicographic
// within each group, consistency pass last.
package gridopt
