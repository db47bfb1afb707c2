package resolver

import (
	"context"
	"regexp"

	"github.com/tsforge/tsforge/internal/descriptor"
	"github.com/tsforge/tsforge/internal/typeinfo"
)

// conditionalResolver claims conditional types whose branch the checker has
// not selected because the check type is an open generic. The internal
// conditional flag is the authoritative signal; once the checker picks a
// branch the flag is gone and the reduced type flows through normally.
type conditionalResolver struct{}

func (conditionalResolver) name() string { return "conditional" }

var conditionalCheckIdent = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s+extends\b`)

func (conditionalResolver) tryResolve(_ context.Context, t descriptor.Type, rc *resolveContext) (*typeinfo.TypeInfo, error) {
	if t.Flags()&descriptor.FlagsConditional == 0 {
		return nil, nil
	}

	text := normalizeTypeText(t.Text())

	// When the identifier before "extends" is a registered parameter,
	// collapse to the bare name: shorter and far more cacheable than the
	// full conditional text.
	if rc.generics != nil {
		if m := conditionalCheckIdent.FindStringSubmatch(text); m != nil && rc.generics.IsParam(m[1]) {
			result := typeinfo.Generic(m[1])
			return &result, nil
		}
	}

	result := typeinfo.Generic(text)
	return &result, nil
}
