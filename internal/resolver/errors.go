package resolver

import (
	"errors"
	"fmt"

	"github.com/tsforge/tsforge/internal/hooks"
)

// ErrDepthExceeded reports that recursion went past the configured maximum.
// Pathological or malformed inputs fail fast on this instead of hanging.
var ErrDepthExceeded = errors.New("type resolution depth exceeded")

// HookError reports a failed plugin hook. Hook failures abort resolution of
// the entire subtree.
type HookError struct {
	Hook hooks.Kind
	Err  error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook failed: %v", e.Hook, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// PropertyError reports that a property's type failed to resolve. The
// containing object resolution aborts; no partial TypeInfo is produced.
type PropertyError struct {
	TypeName string
	Property string
	Err      error
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("resolving property %q of %s: %v", e.Property, e.TypeName, e.Err)
}

func (e *PropertyError) Unwrap() error { return e.Err }

// InternalError wraps an unexpected failure (including panics) from the
// descriptor query surface.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error in %s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }
