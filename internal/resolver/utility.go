package resolver

import (
	"context"

	"github.com/tsforge/tsforge/internal/descriptor"
	"github.com/tsforge/tsforge/internal/generics"
	"github.com/tsforge/tsforge/internal/typeinfo"
)

// builtinUtilityPatterns are the transformation names the expander
// recognizes. The host compiler reduces these to concrete objects when their
// arguments are closed; the expander only matters for the open-generic case.
var builtinUtilityPatterns = []string{
	"Partial", "Required", "Readonly", "Pick", "Omit",
	"Record", "Exclude", "Extract", "NonNullable",
}

// utilityExpander detects utility-style transformations whose argument is
// still an open generic, e.g. Partial<T> inside a generic declaration. It
// never computes the transformation's semantics: a utility type the checker
// already reduced to concrete properties passes through to normal object
// classification.
type utilityExpander struct {
	patterns map[string]bool
}

func newUtilityExpander(extra []string) *utilityExpander {
	patterns := make(map[string]bool, len(builtinUtilityPatterns)+len(extra))
	for _, name := range builtinUtilityPatterns {
		patterns[name] = true
	}
	for _, name := range extra {
		patterns[name] = true
	}
	return &utilityExpander{patterns: patterns}
}

func (u *utilityExpander) name() string { return "utility" }

func (u *utilityExpander) tryResolve(_ context.Context, t descriptor.Type, rc *resolveContext) (*typeinfo.TypeInfo, error) {
	if !u.patterns[patternName(t)] {
		return nil, nil
	}

	// The checker already produced concrete properties: not our case.
	if len(t.Properties()) > 0 {
		return nil, nil
	}

	text := normalizeTypeText(t.Text())
	tokens := genericParamTokens(text, u.patterns)
	if len(tokens) == 0 {
		// No open parameters left in the textual form; whatever this is,
		// built-in classification can read it.
		return nil, nil
	}

	if rc.generics != nil {
		for _, tok := range tokens {
			rc.generics.RegisterParam(generics.Param{Name: tok})
		}
	}

	result := typeinfo.Generic(text)
	return &result, nil
}

// patternName returns the name under which this occurrence was referenced:
// the alias symbol when present (utility references are alias applications),
// falling back to the declaring symbol.
func patternName(t descriptor.Type) string {
	if al := t.Alias(); al != nil && !descriptor.IsAnonymousName(al.Symbol.Name) {
		return al.Symbol.Name
	}
	if sym := t.Symbol(); sym != nil && !descriptor.IsAnonymousName(sym.Name) {
		return sym.Name
	}
	return ""
}
