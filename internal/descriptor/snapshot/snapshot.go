// Package snapshot implements the descriptor query surface over a JSON type
// snapshot — a dump of the host compiler's semantic model produced by a
// companion extractor. It lets the resolver, the CLI, and integration tests
// run without linking the compiler itself.
package snapshot

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-json-experiment/json"

	"github.com/tsforge/tsforge/internal/descriptor"
)

// SchemaVersion is bumped when the snapshot format changes. A mismatch fails
// the load outright; stale dumps must be regenerated, not guessed at.
const SchemaVersion = 1

// document is the on-disk snapshot shape.
type document struct {
	V     int                  `json:"v"`
	Roots map[string]string    `json:"roots"`
	Types map[string]*typeNode `json:"types"`
}

type typeNode struct {
	Kind           string          `json:"kind"`
	Text           string          `json:"text"`
	Symbol         *symbolNode     `json:"symbol,omitempty"`
	Alias          *aliasNode      `json:"alias,omitempty"`
	ObjectFlags    []string        `json:"objectFlags,omitempty"`
	Members        []string        `json:"members,omitempty"`
	TypeArguments  []string        `json:"typeArguments,omitempty"`
	Properties     []propertyNode  `json:"properties,omitempty"`
	ElementType    string          `json:"elementType,omitempty"`
	Tuple          bool            `json:"tuple,omitempty"`
	TupleElements  []string        `json:"tupleElements,omitempty"`
	Literal        any             `json:"literal,omitempty"`
	Callable       bool            `json:"callable,omitempty"`
	IndexInfos     []indexNode     `json:"indexInfos,omitempty"`
	TypeParameters []typeParamNode `json:"typeParameters,omitempty"`
	TemplateTexts  []string        `json:"templateTexts,omitempty"`
	TemplateSlots  []string        `json:"templateSlots,omitempty"`
}

type symbolNode struct {
	Name       string `json:"name"`
	SourceFile string `json:"sourceFile,omitempty"`
}

type aliasNode struct {
	Symbol        symbolNode `json:"symbol"`
	Target        string     `json:"target,omitempty"`
	TypeArguments []string   `json:"typeArguments,omitempty"`
}

type propertyNode struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional,omitempty"`
	Readonly bool   `json:"readonly,omitempty"`
	JSDoc    string `json:"jsDoc,omitempty"`
}

type indexNode struct {
	KeyType   string `json:"keyType"`
	ValueType string `json:"valueType"`
	Readonly  bool   `json:"readonly,omitempty"`
}

type typeParamNode struct {
	Name       string `json:"name"`
	Constraint string `json:"constraint,omitempty"`
	Default    string `json:"default,omitempty"`
}

// kindFlags maps snapshot kind strings to descriptor flags.
var kindFlags = map[string]descriptor.TypeFlags{
	"string":          descriptor.FlagsString,
	"number":          descriptor.FlagsNumber,
	"boolean":         descriptor.FlagsBoolean,
	"undefined":       descriptor.FlagsUndefined,
	"null":            descriptor.FlagsNull,
	"any":             descriptor.FlagsAny,
	"stringLiteral":   descriptor.FlagsStringLiteral,
	"numberLiteral":   descriptor.FlagsNumberLiteral,
	"booleanLiteral":  descriptor.FlagsBooleanLiteral,
	"enum":            descriptor.FlagsEnum,
	"enumLiteral":     descriptor.FlagsEnumLiteral,
	"typeParameter":   descriptor.FlagsTypeParameter,
	"union":           descriptor.FlagsUnion,
	"intersection":    descriptor.FlagsIntersection,
	"conditional":     descriptor.FlagsConditional,
	"templateLiteral": descriptor.FlagsTemplateLiteral,
	"indexedAccess":   descriptor.FlagsIndexedAccess,
	"object":          descriptor.FlagsObject,
}

var objectFlagNames = map[string]descriptor.ObjectFlags{
	"anonymous":    descriptor.ObjectFlagsAnonymous,
	"mapped":       descriptor.ObjectFlagsMapped,
	"instantiated": descriptor.ObjectFlagsInstantiated,
	"reference":    descriptor.ObjectFlagsReference,
}

// Snapshot is a loaded semantic-model dump.
type Snapshot struct {
	doc document
}

// Load reads and validates a snapshot file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return Parse(data)
}

// Parse validates a snapshot document. Every cross-reference must point at an
// existing entry; a dump with dangling ids is corrupt and fails the load
// rather than resolving to a wrong shape later.
func Parse(data []byte) (*Snapshot, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if doc.V != SchemaVersion {
		return nil, fmt.Errorf("snapshot schema version %d, want %d", doc.V, SchemaVersion)
	}
	for name, id := range doc.Roots {
		if _, ok := doc.Types[id]; !ok {
			return nil, fmt.Errorf("snapshot root %q references missing type %q", name, id)
		}
	}
	for id, node := range doc.Types {
		if node == nil {
			return nil, fmt.Errorf("snapshot type %q: empty entry", id)
		}
		if _, ok := kindFlags[node.Kind]; !ok {
			return nil, fmt.Errorf("snapshot type %q: unknown kind %q", id, node.Kind)
		}
		if err := validateRefs(doc.Types, id, node); err != nil {
			return nil, err
		}
	}
	return &Snapshot{doc: doc}, nil
}

// validateRefs checks every type id a node points at.
func validateRefs(types map[string]*typeNode, id string, node *typeNode) error {
	checkRef := func(field, ref string) error {
		if ref == "" {
			return nil
		}
		if _, ok := types[ref]; !ok {
			return fmt.Errorf("snapshot type %q: %s references missing type %q", id, field, ref)
		}
		return nil
	}
	checkRefs := func(field string, refs []string) error {
		for _, ref := range refs {
			if err := checkRef(field, ref); err != nil {
				return err
			}
		}
		return nil
	}

	if err := checkRefs("members", node.Members); err != nil {
		return err
	}
	if err := checkRefs("typeArguments", node.TypeArguments); err != nil {
		return err
	}
	if err := checkRef("elementType", node.ElementType); err != nil {
		return err
	}
	if err := checkRefs("tupleElements", node.TupleElements); err != nil {
		return err
	}
	if err := checkRefs("templateSlots", node.TemplateSlots); err != nil {
		return err
	}
	for _, p := range node.Properties {
		if err := checkRef(fmt.Sprintf("property %q", p.Name), p.Type); err != nil {
			return err
		}
	}
	for _, info := range node.IndexInfos {
		if err := checkRef("index signature value", info.ValueType); err != nil {
			return err
		}
	}
	for _, tp := range node.TypeParameters {
		if err := checkRef(fmt.Sprintf("type parameter %q constraint", tp.Name), tp.Constraint); err != nil {
			return err
		}
		if err := checkRef(fmt.Sprintf("type parameter %q default", tp.Name), tp.Default); err != nil {
			return err
		}
	}
	if node.Alias != nil {
		if err := checkRef("alias target", node.Alias.Target); err != nil {
			return err
		}
		if err := checkRefs("alias typeArguments", node.Alias.TypeArguments); err != nil {
			return err
		}
	}
	return nil
}

// Roots returns the exported root type names in sorted order.
func (s *Snapshot) Roots() []string {
	names := make([]string, 0, len(s.doc.Roots))
	for name := range s.doc.Roots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Root returns the descriptor for a named root type.
func (s *Snapshot) Root(name string) (descriptor.Type, error) {
	id, ok := s.doc.Roots[name]
	if !ok {
		return nil, fmt.Errorf("snapshot has no root type %q", name)
	}
	t := s.typeByID(id)
	if t == nil {
		return nil, fmt.Errorf("root type %q references missing entry %q", name, id)
	}
	return t, nil
}

// typeByID returns the descriptor for a type entry, or nil for the empty id.
// Parse guarantees every non-empty reference has an entry.
func (s *Snapshot) typeByID(id string) descriptor.Type {
	if id == "" {
		return nil
	}
	node, ok := s.doc.Types[id]
	if !ok {
		return nil
	}
	return &snapType{snap: s, node: node}
}

func (s *Snapshot) typesByID(ids []string) []descriptor.Type {
	if len(ids) == 0 {
		return nil
	}
	out := make([]descriptor.Type, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.typeByID(id))
	}
	return out
}

// snapType adapts one document entry to descriptor.Type.
type snapType struct {
	snap *Snapshot
	node *typeNode
}

func (t *snapType) Flags() descriptor.TypeFlags {
	return kindFlags[t.node.Kind]
}

func (t *snapType) ObjectFlags() descriptor.ObjectFlags {
	var flags descriptor.ObjectFlags
	for _, name := range t.node.ObjectFlags {
		flags |= objectFlagNames[name]
	}
	return flags
}

func (t *snapType) Text() string { return t.node.Text }

func (t *snapType) Symbol() *descriptor.Symbol {
	if t.node.Symbol == nil {
		return nil
	}
	return &descriptor.Symbol{Name: t.node.Symbol.Name, SourceFile: t.node.Symbol.SourceFile}
}

func (t *snapType) Alias() *descriptor.Alias {
	if t.node.Alias == nil {
		return nil
	}
	return &descriptor.Alias{
		Symbol:        descriptor.Symbol{Name: t.node.Alias.Symbol.Name, SourceFile: t.node.Alias.Symbol.SourceFile},
		Target:        t.snap.typeByID(t.node.Alias.Target),
		TypeArguments: t.snap.typesByID(t.node.Alias.TypeArguments),
	}
}

func (t *snapType) Members() []descriptor.Type {
	return t.snap.typesByID(t.node.Members)
}

func (t *snapType) TypeArguments() []descriptor.Type {
	return t.snap.typesByID(t.node.TypeArguments)
}

func (t *snapType) Properties() []descriptor.Property {
	if len(t.node.Properties) == 0 {
		return nil
	}
	out := make([]descriptor.Property, 0, len(t.node.Properties))
	for _, p := range t.node.Properties {
		out = append(out, descriptor.Property{
			Name:     p.Name,
			Type:     t.snap.typeByID(p.Type),
			Optional: p.Optional,
			Readonly: p.Readonly,
			JSDoc:    p.JSDoc,
		})
	}
	return out
}

func (t *snapType) ElementType() descriptor.Type {
	return t.snap.typeByID(t.node.ElementType)
}

func (t *snapType) IsTuple() bool { return t.node.Tuple }

func (t *snapType) TupleElements() []descriptor.Type {
	return t.snap.typesByID(t.node.TupleElements)
}

func (t *snapType) LiteralValue() any { return t.node.Literal }

func (t *snapType) IsCallable() bool { return t.node.Callable }

func (t *snapType) IndexInfos() []descriptor.IndexInfo {
	if len(t.node.IndexInfos) == 0 {
		return nil
	}
	out := make([]descriptor.IndexInfo, 0, len(t.node.IndexInfos))
	for i := range t.node.IndexInfos {
		out = append(out, &snapIndexInfo{snap: t.snap, node: &t.node.IndexInfos[i]})
	}
	return out
}

func (t *snapType) TypeParameters() ([]descriptor.TypeParam, error) {
	if len(t.node.TypeParameters) == 0 {
		return nil, nil
	}
	// Parse already rejected dangling constraint/default ids.
	out := make([]descriptor.TypeParam, 0, len(t.node.TypeParameters))
	for _, tp := range t.node.TypeParameters {
		out = append(out, descriptor.TypeParam{
			Name:       tp.Name,
			Constraint: t.snap.typeByID(tp.Constraint),
			Default:    t.snap.typeByID(tp.Default),
		})
	}
	return out, nil
}

func (t *snapType) TemplateSlots() []descriptor.Type {
	return t.snap.typesByID(t.node.TemplateSlots)
}

func (t *snapType) TemplateTexts() []string { return t.node.TemplateTexts }

type snapIndexInfo struct {
	snap *Snapshot
	node *indexNode
}

func (i *snapIndexInfo) KeyType() string { return i.node.KeyType }

func (i *snapIndexInfo) ValueType() descriptor.Type {
	return i.snap.typeByID(i.node.ValueType)
}

func (i *snapIndexInfo) Readonly() bool { return i.node.Readonly }
