// Package network is the graph mutation and derivation engine of nestgraph.
//
// A [Network] owns an ordered sequence of [Node] values, each instantiating a
// number of units of a simulation model, and an ordered sequence of
// [Connection] values joining them. Models are resolved by id through an
// injected [model.Registry] on every access, so catalogue edits show up
// immediately.
//
// # Identity and position
//
// Nodes and connections carry a stable ID. Connections reference their
// endpoints by node ID; a node's index is only its current position and is
// resynchronized by [Network.Clean] after every structural change.
//
// # Derived state
//
// A multimeter-class recorder may only record channels every one of its
// targets advertises. [Node.Recordables] computes that intersection and
// [Network.Clean] drops selected channels that fall outside it. Every public
// mutation runs Clean before its notifications fire, so observers never see
// a half-updated graph.
//
// # Serialization
//
// [Network.Export] produces one of two shapes. [TargetDB] yields a
// [Description] that [Network.Update] turns back into an equivalent network.
// [TargetSimulator] yields a [Simulation] holding only what the simulation
// engine consumes: unit counts, element types, visible parameter values,
// channel selections and placements.
//
// # Errors
//
// Operations referring to nodes or connections outside the network fail with
// an INVALID_REFERENCE error. Unknown models are never fatal: derivations that
// need model metadata yield neutral results and [Network.Problems] lists them.
package network
