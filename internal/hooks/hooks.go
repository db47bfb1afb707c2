// Package hooks defines the interception points the resolver exposes to the
// plugin subsystem. The resolver only depends on the Executor interface; the
// plugin host supplies the implementation. Registry is a minimal in-process
// implementation used by the CLI and tests.
package hooks

import (
	"context"

	"github.com/tsforge/tsforge/internal/descriptor"
	"github.com/tsforge/tsforge/internal/typeinfo"
)

// Kind names an interception point.
type Kind string

const (
	BeforeResolve     Kind = "beforeResolve"
	AfterResolve      Kind = "afterResolve"
	TransformProperty Kind = "transformProperty"
)

// Event carries the descriptor under resolution to hook implementations.
type Event struct {
	Type   descriptor.Type
	Symbol *descriptor.Symbol
}

// Executor is the resolver's view of the plugin subsystem. Any returned
// error aborts resolution of the current subtree.
type Executor interface {
	// ExecuteBeforeResolve runs before a descriptor is classified.
	ExecuteBeforeResolve(ctx context.Context, ev Event) error

	// ExecuteAfterResolve runs on the final TypeInfo of a descriptor and may
	// transform it.
	ExecuteAfterResolve(ctx context.Context, ev Event, t typeinfo.TypeInfo) (typeinfo.TypeInfo, error)

	// ExecuteTransformProperty runs on each resolved object property and may
	// transform it.
	ExecuteTransformProperty(ctx context.Context, ev Event, p typeinfo.PropertyInfo) (typeinfo.PropertyInfo, error)
}

// BeforeFunc, AfterFunc and PropertyFunc are the registrable hook shapes.
type (
	BeforeFunc   func(ctx context.Context, ev Event) error
	AfterFunc    func(ctx context.Context, ev Event, t typeinfo.TypeInfo) (typeinfo.TypeInfo, error)
	PropertyFunc func(ctx context.Context, ev Event, p typeinfo.PropertyInfo) (typeinfo.PropertyInfo, error)
)

// Registry executes registered hooks in registration order. After and
// property hooks chain: each receives the previous hook's output. The first
// error stops the chain and is returned as-is; the resolver attributes it to
// its interception point.
type Registry struct {
	before   []BeforeFunc
	after    []AfterFunc
	property []PropertyFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// OnBeforeResolve registers a before-resolve hook.
func (r *Registry) OnBeforeResolve(fn BeforeFunc) { r.before = append(r.before, fn) }

// OnAfterResolve registers an after-resolve hook.
func (r *Registry) OnAfterResolve(fn AfterFunc) { r.after = append(r.after, fn) }

// OnTransformProperty registers a property transform hook.
func (r *Registry) OnTransformProperty(fn PropertyFunc) { r.property = append(r.property, fn) }

func (r *Registry) ExecuteBeforeResolve(ctx context.Context, ev Event) error {
	for _, fn := range r.before {
		if err := fn(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) ExecuteAfterResolve(ctx context.Context, ev Event, t typeinfo.TypeInfo) (typeinfo.TypeInfo, error) {
	for _, fn := range r.after {
		var err error
		t, err = fn(ctx, ev, t)
		if err != nil {
			return typeinfo.TypeInfo{}, err
		}
	}
	return t, nil
}

func (r *Registry) ExecuteTransformProperty(ctx context.Context, ev Event, p typeinfo.PropertyInfo) (typeinfo.PropertyInfo, error) {
	for _, fn := range r.property {
		var err error
		p, err = fn(ctx, ev, p)
		if err != nil {
			return typeinfo.PropertyInfo{}, err
		}
	}
	return p, nil
}

// Nop is an Executor that runs no hooks.
type Nop struct{}

func (Nop) ExecuteBeforeResolve(context.Context, Event) error { return nil }

func (Nop) ExecuteAfterResolve(_ context.Context, _ Event, t typeinfo.TypeInfo) (typeinfo.TypeInfo, error) {
	return t, nil
}

func (Nop) ExecuteTransformProperty(_ context.Context, _ Event, p typeinfo.PropertyInfo) (typeinfo.PropertyInfo, error) {
	return p, nil
}
