package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tsforge/tsforge/internal/descriptor"
	"github.com/tsforge/tsforge/internal/diagnostic"
	"github.com/tsforge/tsforge/internal/generics"
	"github.com/tsforge/tsforge/internal/resolver"
	"github.com/tsforge/tsforge/internal/typeinfo"
)

// --- utility expander ---

func TestUtilityPassThroughWhenReduced(t *testing.T) {
	r := newResolver(t, resolver.Options{})

	// The checker already evaluated Pick<User, "id" | "name"> down to two
	// concrete properties; the expander must not claim it.
	reduced := &fakeType{
		flags: descriptor.FlagsObject,
		text:  `Pick<User, "id" | "name">`,
		alias: &descriptor.Alias{Symbol: descriptor.Symbol{Name: "Pick"}},
		properties: []descriptor.Property{
			{Name: "id", Type: fakeNumber()},
			{Name: "name", Type: fakeString()},
		},
	}

	got, err := r.ResolveType(context.Background(), reduced, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertKind(t, got, typeinfo.KindObject)
	if len(got.Properties) != 2 || got.Properties[0].Name != "id" || got.Properties[1].Name != "name" {
		t.Errorf("expected the two reduced properties, got %+v", got.Properties)
	}
}

func TestUtilityDetectsOpenGeneric(t *testing.T) {
	r := newResolver(t, resolver.Options{})
	gctx := generics.NewContext()

	open := &fakeType{
		flags: descriptor.FlagsObject,
		text:  "Partial<T>",
		alias: &descriptor.Alias{Symbol: descriptor.Symbol{Name: "Partial"}},
	}

	got, err := r.ResolveType(context.Background(), open, 0, gctx)
	if err != nil {
		t.Fatal(err)
	}
	assertKind(t, got, typeinfo.KindGeneric)
	if got.Name != "Partial<T>" {
		t.Errorf("name = %q", got.Name)
	}
	if !gctx.IsParam("T") {
		t.Error("T must be registered as a generic parameter")
	}
	if gctx.IsParam("Partial") {
		t.Error("the pattern name must not be registered as a parameter")
	}
}

func TestUtilityNormalizesWhitespace(t *testing.T) {
	r := newResolver(t, resolver.Options{})
	open := &fakeType{
		flags: descriptor.FlagsObject,
		text:  "Omit<T,\n    K>",
		alias: &descriptor.Alias{Symbol: descriptor.Symbol{Name: "Omit"}},
	}

	got, err := r.ResolveType(context.Background(), open, 0, generics.NewContext())
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Omit<T, K>" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestUtilityIgnoresClosedArguments(t *testing.T) {
	r := newResolver(t, resolver.Options{})

	// Record<string, number> carries no open parameters; built-in
	// classification applies even though the property list is empty.
	closed := &fakeType{
		flags: descriptor.FlagsObject,
		text:  "Record<string, number>",
		alias: &descriptor.Alias{Symbol: descriptor.Symbol{Name: "Record"}},
	}

	got, err := r.ResolveType(context.Background(), closed, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind == typeinfo.KindGeneric {
		t.Errorf("closed utility application must not be claimed: %+v", got)
	}
}

func TestUtilityCustomPattern(t *testing.T) {
	r := newResolver(t, resolver.Options{UtilityPatterns: []string{"DeepPartial"}})
	open := &fakeType{
		flags: descriptor.FlagsObject,
		text:  "DeepPartial<T>",
		alias: &descriptor.Alias{Symbol: descriptor.Symbol{Name: "DeepPartial"}},
	}

	got, err := r.ResolveType(context.Background(), open, 0, generics.NewContext())
	if err != nil {
		t.Fatal(err)
	}
	assertKind(t, got, typeinfo.KindGeneric)
}

func TestAliasedUtilityShortCircuit(t *testing.T) {
	r := newResolver(t, resolver.Options{})

	// type Loose = Partial<T> — the alias target is still an open utility
	// application; object classification must defer to the expander.
	target := &fakeType{
		flags: descriptor.FlagsObject,
		text:  "Partial<T>",
		alias: &descriptor.Alias{Symbol: descriptor.Symbol{Name: "Partial"}},
	}
	aliased := &fakeType{
		flags: descriptor.FlagsObject,
		text:  "Loose",
		alias: &descriptor.Alias{Symbol: descriptor.Symbol{Name: "Loose"}, Target: target},
	}

	got, err := r.ResolveType(context.Background(), aliased, 0, generics.NewContext())
	if err != nil {
		t.Fatal(err)
	}
	assertKind(t, got, typeinfo.KindGeneric)
	if got.Name != "Partial<T>" {
		t.Errorf("name = %q", got.Name)
	}
}

// --- conditional resolver ---

func TestConditionalClaimsFlaggedDescriptor(t *testing.T) {
	r := newResolver(t, resolver.Options{})
	cond := &fakeType{
		flags: descriptor.FlagsConditional,
		text:  "T extends string ? A : B",
	}

	got, err := r.ResolveType(context.Background(), cond, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertKind(t, got, typeinfo.KindGeneric)
	if got.Name != "T extends string ? A : B" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestConditionalCollapsesToRegisteredParam(t *testing.T) {
	r := newResolver(t, resolver.Options{})
	gctx := generics.NewContext()
	gctx.RegisterParam(generics.Param{Name: "T"})

	cond := &fakeType{
		flags: descriptor.FlagsConditional,
		text:  "T extends string ? A : B",
	}

	got, err := r.ResolveType(context.Background(), cond, 0, gctx)
	if err != nil {
		t.Fatal(err)
	}
	assertKind(t, got, typeinfo.KindGeneric)
	if got.Name != "T" {
		t.Errorf("expected collapse to bare parameter, got %q", got.Name)
	}
}

func TestConditionalPassesWithoutFlag(t *testing.T) {
	r := newResolver(t, resolver.Options{})

	// Text looks conditional but the checker already picked a branch — the
	// flag is authoritative and the descriptor classifies as its shape.
	picked := &fakeType{flags: descriptor.FlagsString, text: "T extends string ? A : B"}
	got, err := r.ResolveType(context.Background(), picked, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertPrimitive(t, got, "string")
}

// --- mapped resolver ---

func TestMappedIndexSignatureExpansion(t *testing.T) {
	r := newResolver(t, resolver.Options{})
	dict := &fakeType{
		flags: descriptor.FlagsObject,
		text:  "{ [key: string]: number }",
		indexInfos: []descriptor.IndexInfo{
			&fakeIndexInfo{keyType: "string", valueType: fakeNumber(), readonly: true},
		},
	}

	got, err := r.ResolveType(context.Background(), dict, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertKind(t, got, typeinfo.KindObject)
	if len(got.Properties) != 0 {
		t.Errorf("expected no per-property entries, got %+v", got.Properties)
	}
	sig := got.IndexSignature
	if sig == nil {
		t.Fatal("missing index signature")
	}
	if sig.KeyType != "string" || !sig.Readonly {
		t.Errorf("signature: %+v", sig)
	}
	assertPrimitive(t, sig.ValueType, "number")
}

func TestMappedUnresolvedGeneric(t *testing.T) {
	r := newResolver(t, resolver.Options{})
	mapped := &fakeType{
		flags:       descriptor.FlagsObject,
		objectFlags: descriptor.ObjectFlagsMapped,
		text:        "{ [K in keyof T]: T[K] }",
		symbol:      &descriptor.Symbol{Name: "Flags"},
	}

	got, err := r.ResolveType(context.Background(), mapped, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertKind(t, got, typeinfo.KindGeneric)
	if got.Name != "Flags" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestMappedInstantiatedPassesThrough(t *testing.T) {
	r := newResolver(t, resolver.Options{})
	instantiated := &fakeType{
		flags:       descriptor.FlagsObject,
		objectFlags: descriptor.ObjectFlagsMapped | descriptor.ObjectFlagsInstantiated,
		text:        "Flags",
		symbol:      &descriptor.Symbol{Name: "Flags"},
		properties:  []descriptor.Property{{Name: "enabled", Type: fakeString()}},
	}

	got, err := r.ResolveType(context.Background(), instantiated, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertKind(t, got, typeinfo.KindObject)
}

// --- template literal resolver ---

func TestTemplateLiteralOpenSlotClaimed(t *testing.T) {
	r := newResolver(t, resolver.Options{})
	gctx := generics.NewContext()
	slot := &fakeType{flags: descriptor.FlagsTypeParameter, text: "T", symbol: &descriptor.Symbol{Name: "T"}}
	tpl := &fakeType{
		flags:         descriptor.FlagsTemplateLiteral,
		text:          "`id_${T}`",
		templateTexts: []string{"id_", ""},
		templateSlots: []descriptor.Type{slot},
	}

	got, err := r.ResolveType(context.Background(), tpl, 0, gctx)
	if err != nil {
		t.Fatal(err)
	}
	assertKind(t, got, typeinfo.KindGeneric)
	if !gctx.IsParam("T") {
		t.Error("slot parameter must be registered")
	}
}

func TestTemplateLiteralClosedRendersPattern(t *testing.T) {
	r := newResolver(t, resolver.Options{})
	tpl := &fakeType{
		flags:         descriptor.FlagsTemplateLiteral,
		text:          "`id_${string}`",
		templateTexts: []string{"id_", ""},
		templateSlots: []descriptor.Type{fakeString()},
	}

	got, err := r.ResolveType(context.Background(), tpl, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertPrimitive(t, got, "string")
	if got.TemplatePattern != "^id_.*$" {
		t.Errorf("pattern = %q", got.TemplatePattern)
	}
}

func TestTemplateLiteralNumberSlotPattern(t *testing.T) {
	r := newResolver(t, resolver.Options{})
	tpl := &fakeType{
		flags:         descriptor.FlagsTemplateLiteral,
		text:          "`v${number}`",
		templateTexts: []string{"v", ""},
		templateSlots: []descriptor.Type{fakeNumber()},
	}

	got, err := r.ResolveType(context.Background(), tpl, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.TemplatePattern != `^v[+-]?(\d+\.?\d*|\.\d+)$` {
		t.Errorf("pattern = %q", got.TemplatePattern)
	}
}

// --- generic parameter introspection ---

func TestGenericIntrospectionDegradesWithWarning(t *testing.T) {
	diags := diagnostic.NewCollector(false, false)
	r := newResolver(t, resolver.Options{Diagnostics: diags})

	box := fakeObject("Box", descriptor.Property{Name: "value", Type: fakeString()})
	box.typeParamsErr = errContrived

	got, err := r.ResolveType(context.Background(), box, 0, nil)
	if err != nil {
		t.Fatalf("introspection failure must not fail the type: %v", err)
	}
	assertKind(t, got, typeinfo.KindObject)
	if len(got.GenericParams) != 0 {
		t.Errorf("expected degraded empty parameter list, got %+v", got.GenericParams)
	}
	if len(diags.Diagnostics()) == 0 {
		t.Error("degradation must leave a warning")
	}
}

func TestGenericParamsResolved(t *testing.T) {
	r := newResolver(t, resolver.Options{})
	gctx := generics.NewContext()

	box := fakeObject("Box", descriptor.Property{Name: "value", Type: fakeString()})
	box.typeParams = []descriptor.TypeParam{
		{Name: "T", Constraint: fakeString()},
		{Name: "U", Default: fakeNumber()},
	}

	got, err := r.ResolveType(context.Background(), box, 0, gctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.GenericParams) != 2 {
		t.Fatalf("params: %+v", got.GenericParams)
	}
	if got.GenericParams[0].Constraint == nil || got.GenericParams[0].Constraint.Name != "string" {
		t.Errorf("constraint: %+v", got.GenericParams[0])
	}
	if got.GenericParams[1].Default == nil || got.GenericParams[1].Default.Name != "number" {
		t.Errorf("default: %+v", got.GenericParams[1])
	}
	if !gctx.IsParam("T") || !gctx.IsParam("U") {
		t.Error("declared parameters must be registered with the context")
	}
	if len(got.UnresolvedGenerics) != 2 {
		t.Errorf("both parameters are unbound: %+v", got.UnresolvedGenerics)
	}
}

func TestGenericConstraintResolutionFailureAborts(t *testing.T) {
	diags := diagnostic.NewCollector(false, false)
	// Depth 0 leaves no room for sub-resolutions, so the constraint trips
	// the depth guard.
	r := newResolver(t, resolver.Options{MaxDepth: 0, MaxDepthSet: true, Diagnostics: diags})

	box := fakeObject("Box")
	box.typeParams = []descriptor.TypeParam{{Name: "T", Constraint: fakeString()}}

	_, err := r.ResolveType(context.Background(), box, 0, generics.NewContext())
	if !errors.Is(err, resolver.ErrDepthExceeded) {
		t.Fatalf("constraint resolution failure must abort the type, got %v", err)
	}
	for _, d := range diags.Diagnostics() {
		if d.Category == diagnostic.CategoryGenericIntrospection {
			t.Errorf("a structural failure must not be downgraded to a warning: %v", d)
		}
	}
}

var errContrived = errDecl("declaration metadata unavailable")

type errDecl string

func (e errDecl) Error() string { return string(e) }
