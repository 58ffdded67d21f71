// Package dom defines the output-medium boundary of the reconciler: a
// tree of addressable handles with attribute, listener, text, and
// child-manipulation capability. No specific markup language is assumed.
//
// Document creates handles; Node is one live handle. NewDocument returns
// an in-memory implementation used by tests and the bench harness. It
// models the live-handle state the reconciler's contract depends on
// (listener registration, merged inline style, cursor-sensitive form
// properties) and supports dispatching synthetic events so handler
// wiring is observable.
//
// A binding to a real medium (browser DOM via syscall/js, or a remote
// surface behind a wire protocol) implements the same two interfaces.
package dom
