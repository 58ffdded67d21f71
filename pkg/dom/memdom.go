package dom

import (
	"reflect"
	"sort"
	"strings"
	"sync"
)

// memDocument is the in-memory Document implementation.
type memDocument struct{}

// NewDocument returns an in-memory document. Handles it creates live
// entirely in process; tests and benchmarks mount into an element
// created here.
func NewDocument() Document {
	return memDocument{}
}

func (memDocument) CreateElement(tag string) Node {
	return &memNode{
		tag:   tag,
		attrs: make(map[string]string),
		style: make(map[string]string),
		props: make(map[string]any),
	}
}

func (memDocument) CreateText(text string) Node {
	return &memNode{isText: true, text: text}
}

// listenerEntry pairs a handler with its comparable identity.
type listenerEntry struct {
	fn Handler
	id uintptr
}

// memNode is the in-memory Node implementation.
type memNode struct {
	mu sync.Mutex

	tag    string
	isText bool
	text   string

	attrs map[string]string
	style map[string]string
	props map[string]any

	listeners map[string][]listenerEntry

	parent   *memNode
	children []*memNode
}

func (n *memNode) Tag() string  { return n.tag }
func (n *memNode) IsText() bool { return n.isText }

func (n *memNode) SetAttribute(name, value string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attrs[name] = value
	if name == "style" {
		n.style = parseStyle(value)
	}
}

func (n *memNode) RemoveAttribute(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.attrs, name)
	if name == "style" {
		n.style = make(map[string]string)
	}
}

func (n *memNode) Attribute(name string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	v, ok := n.attrs[name]
	return v, ok
}

func (n *memNode) Attributes() map[string]string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

func (n *memNode) AddEventListener(event string, h Handler) {
	if h == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.listeners == nil {
		n.listeners = make(map[string][]listenerEntry)
	}
	n.listeners[event] = append(n.listeners[event], listenerEntry{
		fn: h,
		id: reflect.ValueOf(h).Pointer(),
	})
}

func (n *memNode) RemoveEventListener(event string, h Handler) {
	if h == nil {
		return
	}
	id := reflect.ValueOf(h).Pointer()

	n.mu.Lock()
	defer n.mu.Unlock()
	entries := n.listeners[event]
	for i, entry := range entries {
		if entry.id == id {
			n.listeners[event] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// ListenerCount reports registered listeners for an event type.
// Test-support accessor.
func (n *memNode) ListenerCount(event string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners[event])
}

func (n *memNode) Dispatch(evt Event) {
	if evt.Target == nil {
		evt.Target = n
	}

	n.mu.Lock()
	entries := make([]listenerEntry, len(n.listeners[evt.Type]))
	copy(entries, n.listeners[evt.Type])
	n.mu.Unlock()

	for _, entry := range entries {
		entry.fn(evt)
	}
}

func (n *memNode) SetText(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.text = text
}

func (n *memNode) Text() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.text
}

func (n *memNode) AppendChild(child Node) {
	n.InsertBefore(child, nil)
}

func (n *memNode) InsertBefore(child, ref Node) {
	c := child.(*memNode)
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	c.parent = n
	if ref == nil {
		n.children = append(n.children, c)
		return
	}

	r := ref.(*memNode)
	for i, existing := range n.children {
		if existing == r {
			n.children = append(n.children[:i], append([]*memNode{c}, n.children[i:]...)...)
			return
		}
	}
	n.children = append(n.children, c)
}

func (n *memNode) RemoveChild(child Node) {
	c := child.(*memNode)

	n.mu.Lock()
	defer n.mu.Unlock()

	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

func (n *memNode) Parent() Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *memNode) ChildNodes() []Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *memNode) SetProperty(name string, value any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value

	// Writing the value property moves the cursor to the end, the way a
	// live input does. A reconciler that skips unchanged value writes
	// leaves selectionStart undisturbed; one that blindly re-writes is
	// caught by tests observing this field.
	if name == "value" {
		if s, ok := value.(string); ok {
			n.props["selectionStart"] = len(s)
		}
	}
}

func (n *memNode) Property(name string) any {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.props[name]
}

func (n *memNode) SetStyleProperty(name, value string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style[name] = value
	n.attrs["style"] = renderStyle(n.style)
}

func (n *memNode) RemoveStyleProperty(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.style, name)
	if len(n.style) == 0 {
		delete(n.attrs, "style")
	} else {
		n.attrs["style"] = renderStyle(n.style)
	}
}

func (n *memNode) ComputedStyle(name string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style[name]
}

// parseStyle parses "color: red; width: 10px" into a property map.
func parseStyle(s string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		out[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return out
}

// renderStyle renders a property map back to declaration syntax with
// stable-enough output for attribute reads.
func renderStyle(style map[string]string) string {
	if len(style) == 0 {
		return ""
	}
	names := make([]string, 0, len(style))
	for name := range style {
		names = append(names, name)
	}
	// Insertion order is not tracked; sort for deterministic output.
	sort.Strings(names)
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(style[name])
	}
	return b.String()
}
