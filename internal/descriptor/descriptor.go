// Package descriptor defines the query surface the resolver uses to inspect
// the host compiler's semantic model. The engine never evaluates type-system
// semantics itself; it only reads shapes the checker has already produced.
// Implementations adapt a concrete checker (or a serialized dump of one, see
// the snapshot subpackage) to this surface.
package descriptor

// TypeFlags mirrors the host checker's primary type classification bits.
type TypeFlags uint32

const (
	FlagsString TypeFlags = 1 << iota
	FlagsNumber
	FlagsBoolean
	FlagsUndefined
	FlagsNull
	FlagsAny
	FlagsStringLiteral
	FlagsNumberLiteral
	FlagsBooleanLiteral
	FlagsEnum
	FlagsEnumLiteral
	FlagsTypeParameter
	FlagsUnion
	FlagsIntersection
	FlagsConditional
	FlagsTemplateLiteral
	FlagsIndexedAccess
	FlagsObject
)

// ObjectFlags mirrors the host checker's secondary object classification bits.
type ObjectFlags uint32

const (
	ObjectFlagsAnonymous ObjectFlags = 1 << iota
	ObjectFlagsMapped
	ObjectFlagsInstantiated
	ObjectFlagsReference
)

// Type is one concrete or generic type occurrence in the semantic model.
// All methods are structural reads; none trigger further checker evaluation.
type Type interface {
	// Flags returns the raw internal classification bits.
	Flags() TypeFlags

	// ObjectFlags returns the secondary bits for FlagsObject types. Zero for
	// non-object types.
	ObjectFlags() ObjectFlags

	// Text is the type's textual identity as the host compiler prints it,
	// e.g. "User", "Partial<T>", "T extends string ? A : B".
	Text() string

	// Symbol returns the declaring symbol, or nil for anonymous types.
	Symbol() *Symbol

	// Alias returns the alias symbol through which this occurrence was
	// referenced, or nil if the type was not reached via a type alias.
	Alias() *Alias

	// Members returns union or intersection members in declared order.
	// Empty for other kinds.
	Members() []Type

	// TypeArguments returns instantiation arguments, if any.
	TypeArguments() []Type

	// Properties enumerates the resolved properties of an object type.
	Properties() []Property

	// ElementType returns the element type of an array type, or nil.
	ElementType() Type

	// IsTuple reports whether this is a tuple type; TupleElements returns
	// its positional element types.
	IsTuple() bool
	TupleElements() []Type

	// LiteralValue returns the value of a literal type (string, float64 or
	// bool), or nil.
	LiteralValue() any

	// IsCallable reports whether the type declares call signatures.
	IsCallable() bool

	// IndexInfos returns the index signatures declared on an object type.
	IndexInfos() []IndexInfo

	// TypeParameters returns the generic parameters declared by the type.
	// Implementations may fail when declaration metadata is unavailable;
	// callers treat that as best-effort and degrade.
	TypeParameters() ([]TypeParam, error)

	// TemplateSlots returns the placeholder types of a template-literal
	// type, in order. Empty for other kinds.
	TemplateSlots() []Type

	// TemplateTexts returns the literal text segments of a template-literal
	// type. len(TemplateTexts) == len(TemplateSlots)+1 when present.
	TemplateTexts() []string
}

// Symbol identifies a declaration in the semantic model.
type Symbol struct {
	// Name is the declared name. Host compilers use placeholder names such
	// as "__type" or "__object" for structural types.
	Name string

	// SourceFile is the path of the declaring file, when known.
	SourceFile string
}

// Alias describes the type-alias view of a type occurrence.
type Alias struct {
	Symbol Symbol

	// Target is the aliased form, when the model exposes it. May be nil.
	Target Type

	// TypeArguments are the arguments applied at the alias reference.
	TypeArguments []Type
}

// Property is one enumerated property of an object type.
type Property struct {
	Name     string
	Type     Type
	Optional bool
	Readonly bool
	JSDoc    string
}

// IndexInfo is one index signature of an object type.
type IndexInfo interface {
	// KeyType is "string" or "number".
	KeyType() string
	ValueType() Type
	Readonly() bool
}

// TypeParam is one declared generic parameter.
type TypeParam struct {
	Name       string
	Constraint Type // nil when unconstrained
	Default    Type // nil when no default
}

// IsAnonymousName reports whether a symbol name is one of the host
// compiler's internal placeholders rather than a user-declared name.
// Instantiation-internal names start with byte 0xfe.
func IsAnonymousName(name string) bool {
	if name == "" || name == "__type" || name == "__object" || name == "__function" {
		return true
	}
	return name[0] == '\xfe'
}
