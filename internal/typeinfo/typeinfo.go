// Package typeinfo defines the canonical type model produced by the resolver.
// It is a normalized, host-compiler-independent representation of TypeScript
// types, suitable for driving builder-code generation.
package typeinfo

// TypeInfo represents the full canonical information for one type.
// A value is immutable once constructed; the resolver always builds fresh
// trees and never introduces back-pointers. Cyclic source types terminate in
// a KindReference node instead of nesting forever.
type TypeInfo struct {
	// Kind identifies the primary kind of the type.
	Kind Kind `json:"kind"`

	// Name is the type's name where one applies: the primitive name for
	// KindPrimitive, the declared name for KindObject/KindEnum/KindFunction,
	// the parameter name (or opaque type text) for KindGeneric, and the
	// referenced identity for KindReference.
	Name string `json:"name,omitempty"`

	// Literal holds the literal value for KindLiteral types.
	Literal any `json:"literal,omitempty"`

	// ElementType holds the element type for KindArray.
	ElementType *TypeInfo `json:"elementType,omitempty"`

	// Elements holds the positional element types for KindTuple.
	Elements []TypeInfo `json:"elements,omitempty"`

	// UnionTypes holds the member types for KindUnion, in declared order.
	UnionTypes []TypeInfo `json:"unionTypes,omitempty"`

	// IntersectionTypes holds the member types for KindIntersection, in
	// declared order.
	IntersectionTypes []TypeInfo `json:"intersectionTypes,omitempty"`

	// Properties holds the properties of a KindObject type. Property names
	// are unique within one object.
	Properties []PropertyInfo `json:"properties,omitempty"`

	// GenericParams holds the declared generic parameters of a KindObject
	// type, including constraints and defaults where declared.
	GenericParams []GenericParam `json:"genericParams,omitempty"`

	// IndexSignature holds dynamic-key accessor info for a KindObject type.
	IndexSignature *IndexSignature `json:"indexSignature,omitempty"`

	// TypeArguments holds instantiation arguments for KindObject and
	// KindGeneric types.
	TypeArguments []TypeInfo `json:"typeArguments,omitempty"`

	// UnresolvedGenerics lists generic parameter names that remained open
	// when a KindObject type was resolved.
	UnresolvedGenerics []string `json:"unresolvedGenerics,omitempty"`

	// SourceFile is the path of the file declaring a KindObject type, when
	// the descriptor surface exposes one.
	SourceFile string `json:"sourceFile,omitempty"`

	// TemplatePattern holds a regex rendering of a closed template-literal
	// type (e.g. `id_${string}` becomes "^id_.*$"). Only set on
	// KindPrimitive results classified from template literals.
	TemplatePattern string `json:"templatePattern,omitempty"`
}

// Kind classifies a TypeInfo.
type Kind string

const (
	KindPrimitive    Kind = "primitive"    // string, number, boolean, undefined, null, any
	KindArray        Kind = "array"        // T[]
	KindObject       Kind = "object"       // interface, class, object literal
	KindUnion        Kind = "union"        // A | B
	KindIntersection Kind = "intersection" // A & B
	KindLiteral      Kind = "literal"      // "a", 42, true
	KindGeneric      Kind = "generic"      // open type parameter, or an opaque unresolved construct
	KindReference    Kind = "reference"    // reference to a type under resolution (cycle break)
	KindFunction     Kind = "function"     // callable type
	KindTuple        Kind = "tuple"        // [A, B]
	KindEnum         Kind = "enum"         // enum declaration
	KindUnknown      Kind = "unknown"      // anything the resolver could not classify
)

// PropertyInfo describes one property of an object type.
type PropertyInfo struct {
	Name     string   `json:"name"`
	Type     TypeInfo `json:"type"`
	Optional bool     `json:"optional,omitempty"`
	Readonly bool     `json:"readonly,omitempty"`
	// JSDoc is the raw documentation text attached to the property
	// declaration, passed through for the generator layer.
	JSDoc string `json:"jsDoc,omitempty"`
}

// GenericParam describes a declared generic parameter.
type GenericParam struct {
	Name       string    `json:"name"`
	Constraint *TypeInfo `json:"constraint,omitempty"`
	Default    *TypeInfo `json:"default,omitempty"`
}

// IndexSignature describes a dynamic-key accessor on an object type.
// KeyType is "string" or "number".
type IndexSignature struct {
	KeyType   string   `json:"keyType"`
	ValueType TypeInfo `json:"valueType"`
	Readonly  bool     `json:"readonly,omitempty"`
}

// Primitive builds a KindPrimitive TypeInfo.
func Primitive(name string) TypeInfo {
	return TypeInfo{Kind: KindPrimitive, Name: name}
}

// Generic builds a KindGeneric TypeInfo.
func Generic(name string) TypeInfo {
	return TypeInfo{Kind: KindGeneric, Name: name}
}

// Reference builds a KindReference TypeInfo.
func Reference(name string) TypeInfo {
	return TypeInfo{Kind: KindReference, Name: name}
}

// Unknown builds a KindUnknown TypeInfo.
func Unknown() TypeInfo {
	return TypeInfo{Kind: KindUnknown}
}
