package arbor

import (
	"fmt"
)

// ErrorKind classifies the failures arbor can report, following spec.md §7.
type ErrorKind int

const (
	// NullHandleUsed: a null handle was dereferenced or navigated from.
	NullHandleUsed ErrorKind = iota
	// HandleOutOfTree: a handle was supplied to an operation on a tree it
	// does not belong to.
	HandleOutOfTree
	// IndexOutOfBounds: a child index was outside [0, child_count).
	IndexOutOfBounds
	// CycleWouldForm: a subtree move would place a node inside its own
	// descendant set.
	CycleWouldForm
	// PreconditionViolated: a node-level structural precondition failed.
	PreconditionViolated
	// InvalidIteratorOperation: incrementing past end, decrementing past
	// begin, or dereferencing a singular/past-the-end iterator.
	InvalidIteratorOperation
	// AllocationFailed: node storage could not be allocated.
	AllocationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case NullHandleUsed:
		return "null handle used"
	case HandleOutOfTree:
		return "handle out of tree"
	case IndexOutOfBounds:
		return "index out of bounds"
	case CycleWouldForm:
		return "cycle would form"
	case PreconditionViolated:
		return "precondition violated"
	case InvalidIteratorOperation:
		return "invalid iterator operation"
	case AllocationFailed:
		return "allocation failed"
	default:
		return "unknown error"
	}
}

// Error reports a failure at a specific call site, with enough context to
// identify the offending handle, index, or node, per spec.md §7.
type Error struct {
	Kind    ErrorKind
	Op      string // the failing operation's call site, e.g. "Tree.EmplaceNode"
	Context string // identifies the offending handle/index/node
}

func (e *Error) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("arbor: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("arbor: %s: %s: %s", e.Op, e.Kind, e.Context)
}

// Is reports whether target is the sentinel for e's kind, so that callers
// may use errors.Is(err, arbor.ErrNullHandle) instead of type-switching on
// *Error and comparing Kind by hand.
func (e *Error) Is(target error) bool {
	sentinel, ok := target.(*sentinelError)
	return ok && sentinel.kind == e.Kind
}

type sentinelError struct {
	kind ErrorKind
}

func (s *sentinelError) Error() string {
	return "arbor: " + s.kind.String()
}

// Sentinels for use with errors.Is. They are never returned directly by
// arbor itself (every failure carries Op/Context via *Error), but matching
// one of these against a returned error reports whether it is of that kind.
var (
	ErrNullHandle           error = &sentinelError{NullHandleUsed}
	ErrHandleOutOfTree      error = &sentinelError{HandleOutOfTree}
	ErrIndexOutOfBounds     error = &sentinelError{IndexOutOfBounds}
	ErrCycleWouldForm       error = &sentinelError{CycleWouldForm}
	ErrPreconditionViolated error = &sentinelError{PreconditionViolated}
	ErrInvalidIteratorOp    error = &sentinelError{InvalidIteratorOperation}
	ErrAllocationFailed     error = &sentinelError{AllocationFailed}
)

// newError builds a reportable *Error for the safe layer.
func newError(kind ErrorKind, op, contextFmt string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Context: fmt.Sprintf(contextFmt, args...)}
}
