package dom

// Event is a synthetic event delivered to listeners.
type Event struct {
	// Type is the event name ("click", "input", ...).
	Type string

	// Target is the handle the event was dispatched on.
	Target Node

	// Value carries event payload for input-style events.
	Value string
}

// Handler handles a dispatched event.
type Handler func(Event)

// Document creates live handles.
type Document interface {
	// CreateElement creates a detached element handle for the given tag.
	CreateElement(tag string) Node

	// CreateText creates a detached text handle.
	CreateText(text string) Node
}

// Node is one live output handle.
type Node interface {
	// Tag returns the element tag, or "" for text handles.
	Tag() string

	// IsText reports whether this is a text handle.
	IsText() bool

	// SetAttribute sets a markup attribute.
	SetAttribute(name, value string)

	// RemoveAttribute removes a markup attribute.
	RemoveAttribute(name string)

	// Attribute returns an attribute value and whether it is set.
	Attribute(name string) (string, bool)

	// Attributes returns a copy of all set attributes.
	Attributes() map[string]string

	// AddEventListener registers a handler for the given event type.
	AddEventListener(event string, h Handler)

	// RemoveEventListener unregisters a previously added handler,
	// matched by function identity.
	RemoveEventListener(event string, h Handler)

	// Dispatch delivers a synthetic event to this handle's listeners.
	Dispatch(evt Event)

	// SetText replaces the text content of a text handle.
	SetText(text string)

	// Text returns the text content of a text handle.
	Text() string

	// AppendChild appends a child handle.
	AppendChild(child Node)

	// InsertBefore inserts child immediately before ref.
	// A nil ref appends.
	InsertBefore(child, ref Node)

	// RemoveChild detaches a child handle.
	RemoveChild(child Node)

	// Parent returns the parent handle, or nil when detached.
	Parent() Node

	// ChildNodes returns the current children in document order.
	ChildNodes() []Node

	// SetProperty writes a live-object property ("value", "checked").
	// Unlike attributes, properties reflect transient user-editable
	// state.
	SetProperty(name string, value any)

	// Property reads a live-object property.
	Property(name string) any

	// SetStyleProperty merges one property into the inline style
	// declaration.
	SetStyleProperty(name, value string)

	// RemoveStyleProperty clears one property from the inline style
	// declaration.
	RemoveStyleProperty(name string)

	// ComputedStyle reads the effective style value for a property.
	ComputedStyle(name string) string
}
