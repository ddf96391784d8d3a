// Package rng provides the two number generators compared by lagplot.
//
// The "bad" generator is a small-modulus linear congruential generator whose
// lag-1 plot shows a visible lattice. The "good" generators wrap well-studied
// algorithms (PCG and MT19937) whose lag-1 plots look like an unstructured cloud.
//
// # Ownership
//
// Generators are explicit values owned by the caller. Nothing in this package
// touches process-wide random state, so tests can inject a fixed seed and get
// reproducible sequences.
//
// # Sequences
//
// Generate draws a fixed-length Sequence from any Source. Every value is in
// [0, 1). A Sequence is never modified after Generate returns it.
package rng
