package reconcile

// Op classifies a single applied mutation, for instrumentation.
type Op uint8

const (
	OpMountNode      Op = iota // New subtree realized and attached
	OpRemoveNode               // Subtree detached
	OpReplaceNode              // Subtree replaced wholesale
	OpMoveNode                 // Keyed child repositioned
	OpSetText                  // Text content updated
	OpSetAttr                  // Attribute set or updated
	OpRemoveAttr               // Attribute removed
	OpAddListener              // Event listener attached
	OpRemoveListener           // Event listener detached
	OpSetProperty              // Live property written (value/checked)
	OpSetStyle                 // Inline style property merged or cleared
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpMountNode:
		return "MountNode"
	case OpRemoveNode:
		return "RemoveNode"
	case OpReplaceNode:
		return "ReplaceNode"
	case OpMoveNode:
		return "MoveNode"
	case OpSetText:
		return "SetText"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpAddListener:
		return "AddListener"
	case OpRemoveListener:
		return "RemoveListener"
	case OpSetProperty:
		return "SetProperty"
	case OpSetStyle:
		return "SetStyle"
	default:
		return "Unknown"
	}
}

// Observer receives one callback per applied mutation.
// Implementations live outside this package (see pkg/telemetry).
type Observer interface {
	OpApplied(op Op)
}

// record reports an op to the observer, if one is set.
func (r *Reconciler) record(op Op) {
	if r.observer != nil {
		r.observer.OpApplied(op)
	}
}
