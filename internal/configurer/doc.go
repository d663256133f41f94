// Package configurer assembles chains. Given a ChainsModel and a frozen
// registry of component instances it attaches each component's declared
// Dependencies, flattens every chain specification, resolves the resulting
// references, orders each chain and registers the finished chains.
//
// Assembly is all-or-nothing: chains are only registered once every chain
// has been built, so a failure never leaves a partially populated registry.
package configurer
