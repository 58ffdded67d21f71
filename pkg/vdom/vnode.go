package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text leaf
	KindComponent              // Nested component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// VNode is a render node. Nodes produced by one render pass are treated
// as immutable; the next pass builds a fresh tree to diff against.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes, event handlers, special keys
	Children []*VNode // Child nodes, already flattened
	Key      string   // Reconciliation key for keyed lists
	Text     string   // For KindText

	// Comp is the component for KindComponent nodes. Rendered holds the
	// component's output tree, filled in by the reconciler.
	Comp     Component
	Rendered *VNode

	// Ref is the live output handle this node produced.
	// nil until the node is mounted.
	Ref any
}

// Props holds attributes and event handlers.
// Keys with the "on" prefix are event handlers; "key", "class"/
// "className", "style", "value", and "checked" are interpreted specially
// by the reconciler. Everything else is an opaque attribute.
type Props map[string]any

// IsInteractive returns true if this node has event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if IsEventProp(key) {
			return true
		}
	}
	return false
}

// IsEventProp returns true if the prop key designates an event handler
// ("on" + capitalized event name, e.g. "onClick").
func IsEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// EventName returns the event name for an event-handler prop key
// ("onClick" → "click"). Returns "" for non-event keys.
func EventName(key string) string {
	if !IsEventProp(key) {
		return ""
	}
	return strings.ToLower(key[2:])
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}
