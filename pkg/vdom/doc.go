// Package vdom defines the render-node model: an immutable-per-render
// description of what the UI should look like.
//
// VNode is a closed union of three variants (element, text, component)
// discriminated by VKind. Trees are built fresh on every
// render pass with H, Text, and Comp, then handed to the reconciler to
// be diffed against the previous pass's tree. A tree is never mutated in
// place before diffing; the only fields filled in after construction are
// Ref, the back-reference to the live output handle set at mount, and a
// component node's cached render output.
//
// Child lists passed to H may be arbitrarily nested; they are flattened
// into one ordered sequence, and nil and boolean leaves are dropped
// rather than rendered as placeholders.
package vdom
