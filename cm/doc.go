// Package cm implements the core of an in-memory code model for a
// C++-like language: a typed, navigable representation of declarations,
// types and their uses, meant to be produced by a front end (not part of
// this package) and consumed by downstream analyzers, printers and
// debug-info tools.
//
// The package owns the object graph and the algorithms that keep it
// consistent: type interning, a use/def graph that makes deletion and
// rewriting of types safe, a context/namespace/record hierarchy with
// named lookup, a template substitution model, an incremental builder
// with forward-referenced placeholder types, and a record layout engine.
//
// cm is single-threaded: a CodeModel and everything reachable from it is
// meant to be driven from one goroutine at a time, by one logical owner.
// There is no internal locking.
package cm
