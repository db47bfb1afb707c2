package resolver_test

import (
	"testing"

	"github.com/tsforge/tsforge/internal/descriptor"
	"github.com/tsforge/tsforge/internal/resolver"
	"github.com/tsforge/tsforge/internal/typeinfo"
)

// fakeType is an in-memory descriptor for resolver tests. Zero values pass
// every structural query, so each test sets only what it exercises.
type fakeType struct {
	flags         descriptor.TypeFlags
	objectFlags   descriptor.ObjectFlags
	text          string
	symbol        *descriptor.Symbol
	alias         *descriptor.Alias
	members       []descriptor.Type
	typeArgs      []descriptor.Type
	properties    []descriptor.Property
	elementType   descriptor.Type
	tuple         bool
	tupleElements []descriptor.Type
	literal       any
	callable      bool
	indexInfos    []descriptor.IndexInfo
	typeParams    []descriptor.TypeParam
	typeParamsErr error
	templateSlots []descriptor.Type
	templateTexts []string
}

func (f *fakeType) Flags() descriptor.TypeFlags         { return f.flags }
func (f *fakeType) ObjectFlags() descriptor.ObjectFlags { return f.objectFlags }
func (f *fakeType) Text() string                        { return f.text }
func (f *fakeType) Symbol() *descriptor.Symbol          { return f.symbol }
func (f *fakeType) Alias() *descriptor.Alias            { return f.alias }
func (f *fakeType) Members() []descriptor.Type          { return f.members }
func (f *fakeType) TypeArguments() []descriptor.Type    { return f.typeArgs }
func (f *fakeType) Properties() []descriptor.Property   { return f.properties }
func (f *fakeType) ElementType() descriptor.Type        { return f.elementType }
func (f *fakeType) IsTuple() bool                       { return f.tuple }
func (f *fakeType) TupleElements() []descriptor.Type    { return f.tupleElements }
func (f *fakeType) LiteralValue() any                   { return f.literal }
func (f *fakeType) IsCallable() bool                    { return f.callable }
func (f *fakeType) IndexInfos() []descriptor.IndexInfo  { return f.indexInfos }
func (f *fakeType) TemplateSlots() []descriptor.Type    { return f.templateSlots }
func (f *fakeType) TemplateTexts() []string             { return f.templateTexts }

func (f *fakeType) TypeParameters() ([]descriptor.TypeParam, error) {
	return f.typeParams, f.typeParamsErr
}

type fakeIndexInfo struct {
	keyType   string
	valueType descriptor.Type
	readonly  bool
}

func (i *fakeIndexInfo) KeyType() string            { return i.keyType }
func (i *fakeIndexInfo) ValueType() descriptor.Type { return i.valueType }
func (i *fakeIndexInfo) Readonly() bool             { return i.readonly }

func fakeString() *fakeType {
	return &fakeType{flags: descriptor.FlagsString, text: "string"}
}

func fakeNumber() *fakeType {
	return &fakeType{flags: descriptor.FlagsNumber, text: "number"}
}

func fakeObject(name string, props ...descriptor.Property) *fakeType {
	return &fakeType{
		flags:      descriptor.FlagsObject,
		text:       name,
		symbol:     &descriptor.Symbol{Name: name},
		properties: props,
	}
}

func newResolver(t *testing.T, opts resolver.Options) *resolver.Resolver {
	t.Helper()
	r, err := resolver.New(opts)
	if err != nil {
		t.Fatalf("resolver.New: %v", err)
	}
	return r
}

func assertKind(t *testing.T, got typeinfo.TypeInfo, want typeinfo.Kind) {
	t.Helper()
	if got.Kind != want {
		t.Fatalf("kind = %q, want %q (value: %+v)", got.Kind, want, got)
	}
}

func assertPrimitive(t *testing.T, got typeinfo.TypeInfo, name string) {
	t.Helper()
	assertKind(t, got, typeinfo.KindPrimitive)
	if got.Name != name {
		t.Fatalf("primitive = %q, want %q", got.Name, name)
	}
}
