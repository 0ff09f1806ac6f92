// Package diag provides the append-only diagnostics collector threaded
// through every translation and extraction run.
//
// A Collector records lossy or approximate mapping decisions (asymmetric
// storage efficiency collapsed to a geometric mean, per-carrier costs
// accumulated onto one interface, conflicting cyclic-storage requests, ...)
// without ever aborting a run. Hard structural failures are typed errors and
// never pass through here; the two channels are deliberately disjoint so
// callers can distinguish "proceeded with a documented fallback" from
// "refused" without string-matching messages.
//
// Collectors are explicit values created per run and returned alongside the
// result — there is no process-wide logger anywhere in this module. A run is
// single-threaded, so the collector needs no locking.
package diag
