package hooks

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tsforge/tsforge/internal/typeinfo"
)

func TestRegistryBeforeOrderAndAbort(t *testing.T) {
	r := NewRegistry()
	errRejected := errors.New("rejected")
	var calls []string
	r.OnBeforeResolve(func(context.Context, Event) error {
		calls = append(calls, "first")
		return nil
	})
	r.OnBeforeResolve(func(context.Context, Event) error {
		calls = append(calls, "second")
		return errRejected
	})
	r.OnBeforeResolve(func(context.Context, Event) error {
		calls = append(calls, "third")
		return nil
	})

	err := r.ExecuteBeforeResolve(context.Background(), Event{})
	// The registry returns the hook's error untouched; attribution is the
	// caller's job.
	if !errors.Is(err, errRejected) {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 2 {
		t.Errorf("third hook must not run after a failure, calls=%v", calls)
	}
}

func TestRegistryAfterChains(t *testing.T) {
	r := NewRegistry()
	r.OnAfterResolve(func(_ context.Context, _ Event, ti typeinfo.TypeInfo) (typeinfo.TypeInfo, error) {
		ti.Name = ti.Name + "-a"
		return ti, nil
	})
	r.OnAfterResolve(func(_ context.Context, _ Event, ti typeinfo.TypeInfo) (typeinfo.TypeInfo, error) {
		ti.Name = ti.Name + "-b"
		return ti, nil
	})

	out, err := r.ExecuteAfterResolve(context.Background(), Event{}, typeinfo.Primitive("string"))
	if err != nil {
		t.Fatal(err)
	}
	if out.Name != "string-a-b" {
		t.Errorf("hooks must chain, got %q", out.Name)
	}
}

func TestRegistryPropertyTransform(t *testing.T) {
	r := NewRegistry()
	r.OnTransformProperty(func(_ context.Context, _ Event, p typeinfo.PropertyInfo) (typeinfo.PropertyInfo, error) {
		p.Readonly = true
		return p, nil
	})

	p := typeinfo.PropertyInfo{Name: "id", Type: typeinfo.Primitive("number")}
	out, err := r.ExecuteTransformProperty(context.Background(), Event{}, p)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Readonly {
		t.Error("transform was not applied")
	}
}

func TestNopPassesThrough(t *testing.T) {
	var n Nop
	ti := typeinfo.Primitive("boolean")
	out, err := n.ExecuteAfterResolve(context.Background(), Event{}, ti)
	if err != nil || !reflect.DeepEqual(out, ti) {
		t.Errorf("nop must pass through, got %+v err=%v", out, err)
	}
}
