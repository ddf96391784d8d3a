// Package store provides SQLite-backed run history for lagplot.
//
// History is opt-in. When enabled, every completed run appends one row to
// the runs table describing its parameters, the output it wrote, and a
// digest of each generated sequence.
//
// # Ordering
//
// Runs are ordered by seq, an autoincrement integer assigned at insert time,
// never by wall-clock timestamps.
//
// # Digests
//
// Sequence digests are SHA-256 over the little-endian IEEE-754 bits of every
// value, with domain separation (see Digest). Two runs with the same LCG
// parameters and point count always record the same bad digest.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - single open connection
package store
