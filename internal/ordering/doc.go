// Package ordering turns the resolved components of one chain into a total
// order that honors every before/after constraint.
//
// The graph has two kinds of nodes. Component nodes stand for the resolved
// components and provide their own name plus everything listed in
// Dependencies.Provides. Phase nodes are synthetic anchors created for every
// name that is declared as a phase or referenced by a before/after constraint
// but provided by no component.
//
// For a node X, `after n` adds an edge from every provider of n to X and
// `before n` adds an edge from X to every provider of n. When several nodes
// provide n, X is ordered against all of them.
//
// Ordering is Kahn's algorithm over a ready set that always pops phase nodes
// before component nodes and, within a kind, the lowest declaration priority
// first. Phase markers therefore sit as early as their constraints allow and
// unconstrained components keep their declaration order. Nodes left over when
// the ready set drains form a cycle and are all reported at once.
package ordering
