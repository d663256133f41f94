// Package chain defines what a chainable component declares about its
// position in a chain (Dependencies, Phase) and the immutable Chain artifact
// produced by assembly.
package chain
