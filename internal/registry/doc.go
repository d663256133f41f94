// Package registry provides the build-once-then-frozen component registry
// used on both sides of chain assembly.
//
// The input side holds the instantiated components handed to the assembler
// by the container; the output side holds the assembled chains consumed by
// request dispatch. Both are populated through a Builder during one
// configuration generation and then frozen into an immutable Registry that
// may be read concurrently without locking.
//
// Lookups by Specification pick the highest-versioned matching id, so a
// reference such as `rank:1` deterministically resolves to `rank:1.4.0` when
// both `rank:1.2.0` and `rank:1.4.0` are registered.
package registry
