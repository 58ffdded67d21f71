package reconcile

import (
	"github.com/razen-core/rynex-sub002/pkg/dom"
	"github.com/razen-core/rynex-sub002/pkg/vdom"
)

// patchChildren reconciles the child lists of one element. Lists where
// either side carries keys go through keyed reconciliation; everything
// else is paired positionally.
//
// The positional strategy is only correct when list order is stable:
// inserting or removing in the middle of an unkeyed list mis-attributes
// handle identity (the node at each index is patched as if it were the
// same logical item). Callers doing mid-list insert/remove must key
// their children.
func (r *Reconciler) patchChildren(parent dom.Node, oldChildren, newChildren []*vdom.VNode) {
	if hasKeys(oldChildren) || hasKeys(newChildren) {
		r.patchKeyedChildren(parent, oldChildren, newChildren)
		return
	}

	shared := len(oldChildren)
	if len(newChildren) < shared {
		shared = len(newChildren)
	}

	// Pair up positionally over the shared prefix.
	for i := 0; i < shared; i++ {
		r.patchNode(oldChildren[i], newChildren[i])
	}

	// Extra new children are mounted and appended.
	for i := shared; i < len(newChildren); i++ {
		r.mountInto(newChildren[i], parent, nil)
	}

	// Extra old children are removed from the tail.
	for i := shared; i < len(oldChildren); i++ {
		r.unmountNode(oldChildren[i])
	}
}

// patchKeyedChildren matches children by key, reusing and moving live
// handles for kept keys, mounting new keys, and removing dropped keys.
func (r *Reconciler) patchKeyedChildren(parent dom.Node, oldChildren, newChildren []*vdom.VNode) {
	oldByKey := make(map[string]*vdom.VNode, len(oldChildren))
	for _, child := range oldChildren {
		if child.Key != "" {
			oldByKey[child.Key] = child
		}
	}

	matched := make(map[*vdom.VNode]bool, len(oldChildren))

	for _, next := range newChildren {
		if next.Key != "" {
			if prev, ok := oldByKey[next.Key]; ok {
				matched[prev] = true
				r.patchNode(prev, next)
				continue
			}
		}
		// New key, or unkeyed node in a keyed list: mount fresh.
		// Position is fixed up by the reorder pass below.
		r.mountInto(next, parent, nil)
	}

	// Remove old children whose key did not survive. Unkeyed old
	// children can't be matched by key and are removed with them.
	for _, prev := range oldChildren {
		if !matched[prev] {
			r.unmountNode(prev)
		}
	}

	// Reorder pass: walk the desired order and move any handle that is
	// not already at its position.
	live := parent.ChildNodes()
	for i, next := range newChildren {
		want, _ := next.Ref.(dom.Node)
		if want == nil {
			continue
		}
		if i < len(live) && live[i] == want {
			continue
		}
		var ref dom.Node
		if i < len(live) {
			ref = live[i]
		}
		parent.InsertBefore(want, ref)
		r.record(OpMoveNode)
		live = parent.ChildNodes()
	}
}

// hasKeys returns true if any child carries a reconciliation key.
func hasKeys(children []*vdom.VNode) bool {
	for _, child := range children {
		if child.Key != "" {
			return true
		}
	}
	return false
}
