package resolver

import (
	"context"

	"github.com/tsforge/tsforge/internal/descriptor"
	"github.com/tsforge/tsforge/internal/generics"
	"github.com/tsforge/tsforge/internal/typeinfo"
)

// templateLiteralResolver claims template-literal types left unresolved
// because a placeholder slot is an open type parameter (`id_${T}`). Closed
// template literals pass through; built-in classification renders those as a
// string primitive with a regex pattern.
type templateLiteralResolver struct{}

func (templateLiteralResolver) name() string { return "template-literal" }

func (templateLiteralResolver) tryResolve(_ context.Context, t descriptor.Type, rc *resolveContext) (*typeinfo.TypeInfo, error) {
	if t.Flags()&descriptor.FlagsTemplateLiteral == 0 {
		return nil, nil
	}

	open := false
	for _, slot := range t.TemplateSlots() {
		if slot.Flags()&descriptor.FlagsTypeParameter == 0 {
			continue
		}
		open = true
		if rc.generics != nil {
			if sym := slot.Symbol(); sym != nil && !descriptor.IsAnonymousName(sym.Name) {
				rc.generics.RegisterParam(generics.Param{Name: sym.Name})
			}
		}
	}
	if !open {
		return nil, nil
	}

	result := typeinfo.Generic(normalizeTypeText(t.Text()))
	return &result, nil
}
