package reconcile

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/razen-core/rynex-sub002/pkg/dom"
	"github.com/razen-core/rynex-sub002/pkg/vdom"
)

// ErrNotMounted is returned by Patch when the old tree's root carries no
// live handle. That tree was never mounted, which is a structural bug in
// the caller, not a recoverable runtime condition.
var ErrNotMounted = errors.New("reconcile: old tree was never mounted")

// Reconciler applies render-node trees to live handles created by one
// Document. Not safe for concurrent use.
type Reconciler struct {
	doc dom.Document

	// bound tracks the listeners this reconciler attached, per handle
	// and prop key, so prop removal detaches exactly the handler that
	// was registered. Entries are deleted on unmount so no reference to
	// a removed handle is retained.
	bound map[dom.Node]map[string]dom.Handler

	observer Observer
}

// New creates a Reconciler that realizes handles through doc.
func New(doc dom.Document) *Reconciler {
	return &Reconciler{
		doc:   doc,
		bound: make(map[dom.Node]map[string]dom.Handler),
	}
}

// SetObserver installs a mutation observer. Pass nil to disable.
func (r *Reconciler) SetObserver(o Observer) {
	r.observer = o
}

// Mount realizes the tree recursively, creating handles, applying props
// and attaching listeners, and appends it to parent in document order.
// The tree's Ref fields are filled in as handles are created.
func (r *Reconciler) Mount(n *vdom.VNode, parent dom.Node) error {
	if n == nil {
		return errors.New("reconcile: cannot mount nil tree")
	}
	if parent == nil {
		return errors.New("reconcile: cannot mount into nil parent")
	}
	r.mountInto(n, parent, nil)
	return nil
}

// mountInto realizes n and inserts it into parent before ref
// (appending when ref is nil).
func (r *Reconciler) mountInto(n *vdom.VNode, parent dom.Node, ref dom.Node) {
	switch n.Kind {
	case vdom.KindText:
		handle := r.doc.CreateText(n.Text)
		n.Ref = handle
		parent.InsertBefore(handle, ref)

	case vdom.KindElement:
		handle := r.doc.CreateElement(n.Tag)
		n.Ref = handle
		for key, value := range n.Props {
			r.applyProp(handle, key, value, nil, false)
		}
		for _, child := range n.Children {
			r.mountInto(child, handle, nil)
		}
		parent.InsertBefore(handle, ref)

	case vdom.KindComponent:
		n.Rendered = n.Comp.Render()
		r.mountInto(n.Rendered, parent, ref)
		n.Ref = n.Rendered.Ref
	}

	r.record(OpMountNode)
}

// Patch diffs old against new and applies the minimal mutations to the
// live handles old produced. new takes over the handles it keeps; after
// a successful Patch, new is the current tree and old must not be
// patched again.
func (r *Reconciler) Patch(old, new *vdom.VNode) error {
	if old == nil || new == nil {
		return errors.New("reconcile: Patch requires both trees")
	}
	if old.Ref == nil {
		return ErrNotMounted
	}
	r.patchNode(old, new)
	return nil
}

// patchNode reconciles one tree position. old.Ref is always set.
func (r *Reconciler) patchNode(old, new *vdom.VNode) {
	// Different variant at the same position: replace wholesale.
	if old.Kind != new.Kind {
		r.replace(old, new)
		return
	}

	switch old.Kind {
	case vdom.KindText:
		handle := old.Ref.(dom.Node)
		new.Ref = handle
		if old.Text != new.Text {
			handle.SetText(new.Text)
			r.record(OpSetText)
		}

	case vdom.KindElement:
		if old.Tag != new.Tag {
			r.replace(old, new)
			return
		}
		handle := old.Ref.(dom.Node)
		new.Ref = handle
		r.diffProps(handle, old.Props, new.Props)
		r.patchChildren(handle, old.Children, new.Children)

	case vdom.KindComponent:
		// A different component type at the same position is a full
		// replace; the same type re-renders and diffs its output.
		if reflect.TypeOf(old.Comp) != reflect.TypeOf(new.Comp) {
			r.replace(old, new)
			return
		}
		new.Rendered = new.Comp.Render()
		r.patchNode(old.Rendered, new.Rendered)
		new.Ref = new.Rendered.Ref
	}
}

// replace discards old's live subtree and mounts new fresh in its place.
func (r *Reconciler) replace(old, new *vdom.VNode) {
	handle := old.Ref.(dom.Node)
	parent := handle.Parent()
	if parent == nil {
		// A detached root cannot be replaced; reaching one here is a
		// structural bug in the caller.
		panic(fmt.Sprintf("reconcile: cannot replace detached %s node", old.Kind))
	}
	r.mountInto(new, parent, handle)
	r.unmountNode(old)
	r.record(OpReplaceNode)
}

// Unmount detaches the tree's live handle from its parent, unregisters
// every listener the reconciler attached in the subtree, and clears Ref
// so no reference to the removed handle is retained.
func (r *Reconciler) Unmount(n *vdom.VNode) {
	if n == nil || n.Ref == nil {
		return
	}
	r.unmountNode(n)
}

func (r *Reconciler) unmountNode(n *vdom.VNode) {
	handle, _ := n.Ref.(dom.Node)
	if handle != nil {
		if parent := handle.Parent(); parent != nil {
			parent.RemoveChild(handle)
		}
	}
	r.releaseTree(n)
	r.record(OpRemoveNode)
}

// releaseTree recursively detaches listeners and clears handle
// back-references without touching parent/child links (the subtree root
// has already been detached).
func (r *Reconciler) releaseTree(n *vdom.VNode) {
	if n == nil {
		return
	}

	if handle, ok := n.Ref.(dom.Node); ok && handle != nil {
		if attached := r.bound[handle]; attached != nil {
			for key, h := range attached {
				handle.RemoveEventListener(vdom.EventName(key), h)
				r.record(OpRemoveListener)
			}
			delete(r.bound, handle)
		}
	}

	for _, child := range n.Children {
		r.releaseTree(child)
	}
	r.releaseTree(n.Rendered)

	n.Ref = nil
}
