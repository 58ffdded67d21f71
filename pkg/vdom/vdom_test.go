package vdom

import "testing"

func TestH(t *testing.T) {
	node := H("div", Props{"class": "container"},
		H("span", nil, "hello"),
	)

	if node.Kind != KindElement {
		t.Errorf("expected KindElement, got %v", node.Kind)
	}
	if node.Tag != "div" {
		t.Errorf("expected tag div, got %q", node.Tag)
	}
	if node.Props["class"] != "container" {
		t.Errorf("expected class prop, got %v", node.Props["class"])
	}
	if len(node.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(node.Children))
	}

	span := node.Children[0]
	if span.Tag != "span" {
		t.Errorf("expected span child, got %q", span.Tag)
	}
	if len(span.Children) != 1 || span.Children[0].Kind != KindText {
		t.Fatal("expected string child to become a text leaf")
	}
	if span.Children[0].Text != "hello" {
		t.Errorf("expected text %q, got %q", "hello", span.Children[0].Text)
	}
}

func TestHKeyLifting(t *testing.T) {
	node := H("li", Props{"key": "item-1", "class": "row"})

	if node.Key != "item-1" {
		t.Errorf("expected key lifted onto node, got %q", node.Key)
	}

	// A non-string key is left alone.
	unkeyed := H("li", Props{"key": 7})
	if unkeyed.Key != "" {
		t.Errorf("expected empty key for non-string value, got %q", unkeyed.Key)
	}
}

func TestHChildFlattening(t *testing.T) {
	items := []*VNode{
		H("li", nil, "a"),
		H("li", nil, "b"),
	}

	node := H("ul", nil,
		nil,
		false,
		items,
		[]any{H("li", nil, "c"), []any{H("li", nil, "d")}},
		true,
	)

	if len(node.Children) != 4 {
		t.Fatalf("expected 4 children after flattening, got %d", len(node.Children))
	}

	want := []string{"a", "b", "c", "d"}
	for i, child := range node.Children {
		if child.Tag != "li" {
			t.Errorf("child %d: expected li, got %q", i, child.Tag)
		}
		if child.Children[0].Text != want[i] {
			t.Errorf("child %d: expected text %q, got %q", i, want[i], child.Children[0].Text)
		}
	}
}

func TestHNonNodeChild(t *testing.T) {
	node := H("div", nil, 42)

	if len(node.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(node.Children))
	}
	if node.Children[0].Kind != KindText || node.Children[0].Text != "42" {
		t.Errorf("expected stringified text leaf, got %+v", node.Children[0])
	}
}

func TestTextf(t *testing.T) {
	node := Textf("Count: %d", 5)

	if node.Kind != KindText {
		t.Errorf("expected KindText, got %v", node.Kind)
	}
	if node.Text != "Count: 5" {
		t.Errorf("expected %q, got %q", "Count: 5", node.Text)
	}
}

func TestComp(t *testing.T) {
	comp := Func(func() *VNode {
		return H("div", nil, "inner")
	})

	node := Comp(comp, Props{"key": "widget"})
	if node.Kind != KindComponent {
		t.Errorf("expected KindComponent, got %v", node.Kind)
	}
	if node.Key != "widget" {
		t.Errorf("expected key lifted, got %q", node.Key)
	}

	rendered := node.Comp.Render()
	if rendered.Tag != "div" {
		t.Errorf("expected rendered div, got %q", rendered.Tag)
	}
}

func TestComponentAsChild(t *testing.T) {
	comp := Func(func() *VNode {
		return Text("widget")
	})

	node := H("div", nil, comp)
	if len(node.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(node.Children))
	}
	if node.Children[0].Kind != KindComponent {
		t.Errorf("expected component child, got %v", node.Children[0].Kind)
	}
}

func TestIsEventProp(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"onClick", true},
		{"onInput", true},
		{"ondblclick", true},
		{"on", false},
		{"once", true}, // "on" prefix is all the parser sees
		{"class", false},
		{"", false},
	}

	for _, c := range cases {
		if got := IsEventProp(c.key); got != c.want {
			t.Errorf("IsEventProp(%q) = %v, want %v", c.key, got, c.want)
		}
	}
}

func TestEventName(t *testing.T) {
	if got := EventName("onClick"); got != "click" {
		t.Errorf("expected %q, got %q", "click", got)
	}
	if got := EventName("onDblClick"); got != "dblclick" {
		t.Errorf("expected %q, got %q", "dblclick", got)
	}
	if got := EventName("class"); got != "" {
		t.Errorf("expected empty name for non-event key, got %q", got)
	}
}

func TestIsInteractive(t *testing.T) {
	plain := H("div", Props{"class": "x"})
	if plain.IsInteractive() {
		t.Error("expected non-interactive node")
	}

	button := H("button", Props{"onClick": func() {}})
	if !button.IsInteractive() {
		t.Error("expected interactive node")
	}

	if Text("hi").IsInteractive() {
		t.Error("text leaves are never interactive")
	}
}

func TestVKindString(t *testing.T) {
	cases := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindComponent, "Component"},
		{VKind(99), "Unknown"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("VKind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}
