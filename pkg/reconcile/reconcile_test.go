package reconcile

import (
	"testing"

	"github.com/razen-core/rynex-sub002/pkg/dom"
	"github.com/razen-core/rynex-sub002/pkg/rynex"
	"github.com/razen-core/rynex-sub002/pkg/vdom"
)

// opCounter counts applied mutations per op type.
type opCounter struct {
	counts map[Op]int
}

func newOpCounter() *opCounter {
	return &opCounter{counts: make(map[Op]int)}
}

func (c *opCounter) OpApplied(op Op) {
	c.counts[op]++
}

func newTestMount(t *testing.T, tree *vdom.VNode) (*Reconciler, dom.Node) {
	t.Helper()
	doc := dom.NewDocument()
	r := New(doc)
	root := doc.CreateElement("body")
	if err := r.Mount(tree, root); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	return r, root
}

func TestMountElementTree(t *testing.T) {
	tree := vdom.H("div", vdom.Props{"class": "container", "id": "app"},
		vdom.H("span", nil, "hello"),
	)
	_, root := newTestMount(t, tree)

	kids := root.ChildNodes()
	if len(kids) != 1 {
		t.Fatalf("expected 1 mounted child, got %d", len(kids))
	}

	div := kids[0]
	if div.Tag() != "div" {
		t.Errorf("expected div, got %q", div.Tag())
	}
	if v, _ := div.Attribute("class"); v != "container" {
		t.Errorf("expected class container, got %q", v)
	}
	if v, _ := div.Attribute("id"); v != "app" {
		t.Errorf("expected id app, got %q", v)
	}

	if tree.Ref != div {
		t.Error("expected tree root Ref to hold the live handle")
	}

	span := div.ChildNodes()[0]
	if span.Tag() != "span" {
		t.Errorf("expected span, got %q", span.Tag())
	}
	text := span.ChildNodes()[0]
	if !text.IsText() || text.Text() != "hello" {
		t.Errorf("expected text leaf hello, got %q", text.Text())
	}
}

func TestMountListeners(t *testing.T) {
	clicks := 0
	tree := vdom.H("button", vdom.Props{"onClick": func() { clicks++ }})
	_, root := newTestMount(t, tree)

	button := root.ChildNodes()[0]
	button.Dispatch(dom.Event{Type: "click"})
	if clicks != 1 {
		t.Errorf("expected dispatched click to fire handler, got %d", clicks)
	}
}

func TestMountComponent(t *testing.T) {
	comp := vdom.Func(func() *vdom.VNode {
		return vdom.H("div", nil, "inner")
	})
	tree := vdom.Comp(comp, nil)
	_, root := newTestMount(t, tree)

	if tree.Rendered == nil {
		t.Fatal("expected component output recorded on the node")
	}
	if tree.Ref != tree.Rendered.Ref {
		t.Error("expected component Ref to follow its output's handle")
	}
	if root.ChildNodes()[0].Tag() != "div" {
		t.Error("expected rendered output mounted")
	}
}

func TestMountNilArguments(t *testing.T) {
	doc := dom.NewDocument()
	r := New(doc)
	root := doc.CreateElement("body")

	if err := r.Mount(nil, root); err == nil {
		t.Error("expected error mounting nil tree")
	}
	if err := r.Mount(vdom.Text("x"), nil); err == nil {
		t.Error("expected error mounting into nil parent")
	}
}

func TestPatchRequiresMountedOld(t *testing.T) {
	doc := dom.NewDocument()
	r := New(doc)

	old := vdom.H("div", nil)
	next := vdom.H("div", nil)

	if err := r.Patch(old, next); err != ErrNotMounted {
		t.Errorf("expected ErrNotMounted, got %v", err)
	}
	if err := r.Patch(nil, next); err == nil {
		t.Error("expected error for nil old tree")
	}
	if err := r.Patch(old, nil); err == nil {
		t.Error("expected error for nil new tree")
	}
}

func TestPatchTextInPlace(t *testing.T) {
	old := vdom.H("div", nil, "before")
	r, _ := newTestMount(t, old)

	counter := newOpCounter()
	r.SetObserver(counter)

	next := vdom.H("div", nil, "after")
	if err := r.Patch(old, next); err != nil {
		t.Fatalf("Patch failed: %v", err)
	}

	// The text handle mutates in place; nothing is replaced.
	if next.Children[0].Ref != old.Children[0].Ref {
		t.Error("expected text handle identity preserved")
	}
	handle := next.Children[0].Ref.(dom.Node)
	if handle.Text() != "after" {
		t.Errorf("expected text updated, got %q", handle.Text())
	}
	if counter.counts[OpSetText] != 1 {
		t.Errorf("expected 1 SetText, got %d", counter.counts[OpSetText])
	}
	if counter.counts[OpReplaceNode] != 0 {
		t.Errorf("expected no replace, got %d", counter.counts[OpReplaceNode])
	}

	// An identical re-render applies nothing.
	same := vdom.H("div", nil, "after")
	if err := r.Patch(next, same); err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
	if counter.counts[OpSetText] != 1 {
		t.Errorf("unchanged text must not be rewritten, got %d", counter.counts[OpSetText])
	}
}

func TestPatchKindMismatchReplaces(t *testing.T) {
	old := vdom.H("div", nil, vdom.Text("leaf"))
	r, root := newTestMount(t, old)

	next := vdom.H("div", nil, vdom.H("span", nil))
	if err := r.Patch(old, next); err != nil {
		t.Fatalf("Patch failed: %v", err)
	}

	div := root.ChildNodes()[0]
	kids := div.ChildNodes()
	if len(kids) != 1 || kids[0].Tag() != "span" {
		t.Fatalf("expected span to replace text leaf, got %v", kids)
	}
	if old.Children[0].Ref != nil {
		t.Error("expected replaced node's Ref cleared")
	}
}

func TestPatchTagMismatchReplaces(t *testing.T) {
	old := vdom.H("div", nil, vdom.H("span", vdom.Props{"class": "x"}))
	r, root := newTestMount(t, old)
	spanHandle := old.Children[0].Ref

	next := vdom.H("div", nil, vdom.H("p", vdom.Props{"class": "x"}))
	if err := r.Patch(old, next); err != nil {
		t.Fatalf("Patch failed: %v", err)
	}

	div := root.ChildNodes()[0]
	if got := div.ChildNodes()[0].Tag(); got != "p" {
		t.Errorf("expected p, got %q", got)
	}
	if next.Children[0].Ref == spanHandle {
		t.Error("expected a fresh handle for the replacing tag")
	}
}

func TestPatchComponentSameTypeReRenders(t *testing.T) {
	label := "first"
	render := func() *vdom.VNode {
		return vdom.H("div", nil, label)
	}

	old := vdom.Comp(vdom.Func(render), nil)
	r, _ := newTestMount(t, old)
	handle := old.Ref

	label = "second"
	next := vdom.Comp(vdom.Func(render), nil)
	if err := r.Patch(old, next); err != nil {
		t.Fatalf("Patch failed: %v", err)
	}

	if next.Ref != handle {
		t.Error("expected same component type to keep its handle")
	}
	text := next.Rendered.Children[0].Ref.(dom.Node)
	if text.Text() != "second" {
		t.Errorf("expected re-rendered output, got %q", text.Text())
	}
}

type staticComponent struct{ tag string }

func (s *staticComponent) Render() *vdom.VNode {
	return vdom.H(s.tag, nil)
}

func TestPatchComponentTypeChangeReplaces(t *testing.T) {
	old := vdom.H("div", nil, vdom.Comp(vdom.Func(func() *vdom.VNode {
		return vdom.H("span", nil)
	}), nil))
	r, root := newTestMount(t, old)

	next := vdom.H("div", nil, vdom.Comp(&staticComponent{tag: "p"}, nil))
	if err := r.Patch(old, next); err != nil {
		t.Fatalf("Patch failed: %v", err)
	}

	div := root.ChildNodes()[0]
	if got := div.ChildNodes()[0].Tag(); got != "p" {
		t.Errorf("expected replacement output p, got %q", got)
	}
}

func TestUnmountReleasesListeners(t *testing.T) {
	clicks := 0
	tree := vdom.H("div", nil,
		vdom.H("button", vdom.Props{"onClick": func() { clicks++ }}),
	)
	r, root := newTestMount(t, tree)
	button := tree.Children[0].Ref.(dom.Node)

	r.Unmount(tree)

	if len(root.ChildNodes()) != 0 {
		t.Error("expected tree detached from parent")
	}
	if tree.Ref != nil || tree.Children[0].Ref != nil {
		t.Error("expected Ref cleared throughout the subtree")
	}

	// The handler was unregistered, not just orphaned with the handle.
	button.Dispatch(dom.Event{Type: "click"})
	if clicks != 0 {
		t.Errorf("expected no handler to fire after unmount, got %d", clicks)
	}
}

func TestUnmountNilIsNoOp(t *testing.T) {
	r := New(dom.NewDocument())
	r.Unmount(nil)
	r.Unmount(vdom.H("div", nil)) // never mounted
}

// TestCounterFlow drives the full loop: a render effect reads a store,
// mounts on first run, diffs on re-runs, and the host flushes after each
// event turn.
func TestCounterFlow(t *testing.T) {
	doc := dom.NewDocument()
	r := New(doc)
	root := doc.CreateElement("body")

	owner := rynex.NewOwner(nil)
	defer owner.Dispose()

	state := rynex.NewStore(map[string]any{"count": 0})
	increment := func() {
		v, _ := state.Peek("count")
		state.Set("count", v.(int)+1)
	}

	render := func() *vdom.VNode {
		count, _ := state.Get("count")
		return vdom.H("div", nil,
			vdom.Textf("Count: %v", count),
			vdom.H("button", vdom.Props{"onClick": increment}),
		)
	}

	renders := 0
	var current *vdom.VNode
	rynex.NewEffect(owner, func() rynex.Cleanup {
		renders++
		next := render()
		if current == nil {
			if err := r.Mount(next, root); err != nil {
				t.Fatalf("Mount failed: %v", err)
			}
		} else {
			if err := r.Patch(current, next); err != nil {
				t.Fatalf("Patch failed: %v", err)
			}
		}
		current = next
		return nil
	})

	div := root.ChildNodes()[0]
	textHandle := div.ChildNodes()[0]
	if textHandle.Text() != "Count: 0" {
		t.Fatalf("expected initial text, got %q", textHandle.Text())
	}

	// User clicks; the host flushes once the turn unwinds.
	button := div.ChildNodes()[1]
	button.Dispatch(dom.Event{Type: "click"})
	owner.Flush()

	if renders != 2 {
		t.Errorf("expected 2 renders, got %d", renders)
	}
	if textHandle.Text() != "Count: 1" {
		t.Errorf("expected updated text in place, got %q", textHandle.Text())
	}
	if div.ChildNodes()[0] != textHandle {
		t.Error("expected text handle identity preserved across patches")
	}

	// Writing the same value again re-runs nothing.
	state.Set("count", 1)
	owner.Flush()
	if renders != 2 {
		t.Errorf("no-op write must not re-render, got %d renders", renders)
	}

	// Two clicks in one turn coalesce into a single re-render.
	button.Dispatch(dom.Event{Type: "click"})
	button.Dispatch(dom.Event{Type: "click"})
	owner.Flush()
	if renders != 3 {
		t.Errorf("expected one coalesced re-render, got %d renders", renders)
	}
	if textHandle.Text() != "Count: 3" {
		t.Errorf("expected final text, got %q", textHandle.Text())
	}
}
