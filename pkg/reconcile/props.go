package reconcile

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/razen-core/rynex-sub002/pkg/dom"
	"github.com/razen-core/rynex-sub002/pkg/vdom"
)

// diffProps reverses props that disappeared, applies props that changed
// or appeared, and leaves unchanged props untouched. Leaving unchanged
// keys alone is required for stateful properties like value/checked,
// where a no-op write would reset cursor position or re-trigger native
// side effects.
func (r *Reconciler) diffProps(handle dom.Node, oldProps, newProps vdom.Props) {
	for key, oldVal := range oldProps {
		if key == "key" {
			continue
		}
		if _, exists := newProps[key]; !exists {
			r.clearProp(handle, key, oldVal)
		}
	}

	for key, newVal := range newProps {
		if key == "key" {
			continue
		}
		oldVal, existed := oldProps[key]
		if existed && propsEqual(oldVal, newVal) {
			continue
		}
		r.applyProp(handle, key, newVal, oldVal, existed)
	}
}

// applyProp applies one prop to a live handle. oldVal/hadOld describe
// the previously applied value for the same key, so listener swaps can
// detach the outgoing handler first.
func (r *Reconciler) applyProp(handle dom.Node, key string, value, oldVal any, hadOld bool) {
	switch {
	case key == "key":
		// Reconciliation key, never written to the handle.

	case vdom.IsEventProp(key):
		if hadOld {
			r.detachListener(handle, key)
		}
		r.attachListener(handle, key, value)

	case key == "class" || key == "className":
		handle.SetAttribute("class", propToString(value))
		r.record(OpSetAttr)

	case key == "style":
		r.applyStyle(handle, value, oldVal)

	case key == "value":
		handle.SetProperty("value", propToString(value))
		r.record(OpSetProperty)

	case key == "checked":
		handle.SetProperty("checked", propToBool(value))
		r.record(OpSetProperty)

	default:
		handle.SetAttribute(key, propToString(value))
		r.record(OpSetAttr)
	}
}

// clearProp reverses the applied effect of a prop that is gone: detach
// the listener registered under the key, remove the attribute, reset
// class/style, or zero the live property.
func (r *Reconciler) clearProp(handle dom.Node, key string, oldVal any) {
	switch {
	case vdom.IsEventProp(key):
		r.detachListener(handle, key)

	case key == "class" || key == "className":
		handle.RemoveAttribute("class")
		r.record(OpRemoveAttr)

	case key == "style":
		switch old := oldVal.(type) {
		case map[string]string:
			for name := range old {
				handle.RemoveStyleProperty(name)
				r.record(OpSetStyle)
			}
		default:
			handle.RemoveAttribute("style")
			r.record(OpRemoveAttr)
		}

	case key == "value":
		handle.SetProperty("value", "")
		r.record(OpSetProperty)

	case key == "checked":
		handle.SetProperty("checked", false)
		r.record(OpSetProperty)

	default:
		handle.RemoveAttribute(key)
		r.record(OpRemoveAttr)
	}
}

// applyStyle handles the two accepted style forms: a precomputed string
// written to the style attribute verbatim, or a flat property map merged
// into the live style declaration. Merge semantics: properties in the
// new map are set, properties that were in the old map but are gone are
// cleared, and inline styles set outside the mapping persist.
func (r *Reconciler) applyStyle(handle dom.Node, value, oldVal any) {
	switch v := value.(type) {
	case string:
		handle.SetAttribute("style", v)
		r.record(OpSetAttr)

	case map[string]string:
		if old, ok := oldVal.(map[string]string); ok {
			for name := range old {
				if _, kept := v[name]; !kept {
					handle.RemoveStyleProperty(name)
					r.record(OpSetStyle)
				}
			}
		}
		for name, val := range v {
			if handle.ComputedStyle(name) != val {
				handle.SetStyleProperty(name, val)
				r.record(OpSetStyle)
			}
		}

	default:
		handle.SetAttribute("style", propToString(value))
		r.record(OpSetAttr)
	}
}

// attachListener wraps the prop value into a dom.Handler, registers it,
// and remembers it under the prop key for later detach.
func (r *Reconciler) attachListener(handle dom.Node, key string, value any) {
	h := toHandler(value)
	if h == nil {
		return
	}

	handle.AddEventListener(vdom.EventName(key), h)
	attached := r.bound[handle]
	if attached == nil {
		attached = make(map[string]dom.Handler)
		r.bound[handle] = attached
	}
	attached[key] = h
	r.record(OpAddListener)
}

// detachListener removes the handler previously registered under key.
func (r *Reconciler) detachListener(handle dom.Node, key string) {
	attached := r.bound[handle]
	h, ok := attached[key]
	if !ok {
		return
	}
	handle.RemoveEventListener(vdom.EventName(key), h)
	delete(attached, key)
	if len(attached) == 0 {
		delete(r.bound, handle)
	}
	r.record(OpRemoveListener)
}

// toHandler accepts the handler shapes callers write naturally.
func toHandler(value any) dom.Handler {
	switch fn := value.(type) {
	case dom.Handler:
		return fn
	case func(dom.Event):
		return fn
	case func():
		return func(dom.Event) { fn() }
	default:
		return nil
	}
}

// propsEqual compares two prop values for equality.
func propsEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() {
		return va.IsValid() == vb.IsValid()
	}
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Func:
		// Handlers compare by identity; fresh closures re-attach.
		return va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Slice:
		return reflect.DeepEqual(a, b)
	default:
		if va.Comparable() {
			return a == b
		}
		return false
	}
}

// propToString converts a prop value to its attribute form.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// propToBool converts a prop value to its property form for checked.
func propToBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != "" && val != "false"
	default:
		return v != nil
	}
}
