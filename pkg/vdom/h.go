package vdom

import "fmt"

// H creates an element node with the given tag, props, and children.
// Children may be *VNode, []*VNode, []any (nested arbitrarily), string
// (becomes a text leaf), or Component. nil and bool children are
// dropped, not rendered as placeholders. The reserved "key" prop, when a
// string, is lifted onto the node for keyed reconciliation.
func H(tag string, props Props, children ...any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: props,
	}

	if props != nil {
		if key, ok := props["key"].(string); ok {
			node.Key = key
		}
	}

	node.Children = appendFlattened(nil, children)
	return node
}

// Text creates a text leaf.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text leaf.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Comp creates a component node. Props are passed through for the
// reconciler; the component's own Render output is what gets mounted.
func Comp(c Component, props Props) *VNode {
	node := &VNode{
		Kind:  KindComponent,
		Comp:  c,
		Props: props,
	}
	if props != nil {
		if key, ok := props["key"].(string); ok {
			node.Key = key
		}
	}
	return node
}

// appendFlattened collapses an arbitrarily nested child list into one
// flat ordered sequence, dropping nil and boolean leaves.
func appendFlattened(dst []*VNode, children []any) []*VNode {
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case bool:
			// Conditional rendering artifact; never a placeholder.
			continue
		case *VNode:
			if v != nil {
				dst = append(dst, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					dst = append(dst, c)
				}
			}
		case []any:
			dst = appendFlattened(dst, v)
		case string:
			dst = append(dst, Text(v))
		case Component:
			dst = append(dst, Comp(v, nil))
		default:
			dst = append(dst, Textf("%v", v))
		}
	}
	return dst
}
