package typeinfo

import (
	"fmt"
	"sort"
	"strings"
)

// Serialize renders a TypeInfo as a deterministic string. Object properties
// are sorted by name and union/intersection members by their own rendering,
// so structurally equal types collapse to one string regardless of the order
// in which the resolver discovered their parts. Cache keys are derived from
// this rendering; changing it invalidates every cached entry.
func Serialize(t TypeInfo) string {
	var sb strings.Builder
	writeType(&sb, t)
	return sb.String()
}

func writeType(sb *strings.Builder, t TypeInfo) {
	sb.WriteString(string(t.Kind))
	switch t.Kind {
	case KindPrimitive, KindGeneric, KindReference, KindEnum, KindFunction:
		sb.WriteString("(")
		sb.WriteString(t.Name)
		writeTypeArgs(sb, t.TypeArguments)
		sb.WriteString(")")
	case KindLiteral:
		fmt.Fprintf(sb, "(%v)", t.Literal)
	case KindArray:
		sb.WriteString("[")
		if t.ElementType != nil {
			writeType(sb, *t.ElementType)
		}
		sb.WriteString("]")
	case KindTuple:
		// Tuples are positional; order is significant and preserved.
		sb.WriteString("[")
		for i, e := range t.Elements {
			if i > 0 {
				sb.WriteString(",")
			}
			writeType(sb, e)
		}
		sb.WriteString("]")
	case KindUnion:
		writeSortedMembers(sb, t.UnionTypes)
	case KindIntersection:
		writeSortedMembers(sb, t.IntersectionTypes)
	case KindObject:
		writeObject(sb, t)
	}
}

func writeTypeArgs(sb *strings.Builder, args []TypeInfo) {
	if len(args) == 0 {
		return
	}
	sb.WriteString("<")
	for i, a := range args {
		if i > 0 {
			sb.WriteString(",")
		}
		writeType(sb, a)
	}
	sb.WriteString(">")
}

func writeSortedMembers(sb *strings.Builder, members []TypeInfo) {
	rendered := make([]string, len(members))
	for i, m := range members {
		rendered[i] = Serialize(m)
	}
	sort.Strings(rendered)
	sb.WriteString("{")
	sb.WriteString(strings.Join(rendered, "|"))
	sb.WriteString("}")
}

func writeObject(sb *strings.Builder, t TypeInfo) {
	sb.WriteString("{")
	if t.Name != "" {
		sb.WriteString("name=")
		sb.WriteString(t.Name)
		sb.WriteString(";")
	}
	props := make([]PropertyInfo, len(t.Properties))
	copy(props, t.Properties)
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
	for _, p := range props {
		sb.WriteString(p.Name)
		if p.Optional {
			sb.WriteString("?")
		}
		if p.Readonly {
			sb.WriteString("!")
		}
		sb.WriteString(":")
		writeType(sb, p.Type)
		sb.WriteString(";")
	}
	if t.IndexSignature != nil {
		sb.WriteString("[")
		sb.WriteString(t.IndexSignature.KeyType)
		sb.WriteString("]:")
		writeType(sb, t.IndexSignature.ValueType)
		sb.WriteString(";")
	}
	writeTypeArgs(sb, t.TypeArguments)
	sb.WriteString("}")
}
