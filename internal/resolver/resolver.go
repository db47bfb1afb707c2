// Package resolver converts host-compiler type descriptors into the
// canonical typeinfo model. The orchestrating Resolver owns recursion-depth
// limiting, cycle detection, hook invocation, and built-in classification;
// four claim-or-pass strategies handle constructs the checker may leave
// structurally unresolved (utility, conditional, mapped, template-literal).
package resolver

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tsforge/tsforge/internal/descriptor"
	"github.com/tsforge/tsforge/internal/diagnostic"
	"github.com/tsforge/tsforge/internal/generics"
	"github.com/tsforge/tsforge/internal/hooks"
	"github.com/tsforge/tsforge/internal/typecache"
	"github.com/tsforge/tsforge/internal/typeinfo"
)

// DefaultMaxDepth bounds recursion when no maximum is configured.
const DefaultMaxDepth = 10

// enumNameFallback names enum descriptors whose symbol is unavailable.
const enumNameFallback = "UnknownEnum"

// Options configures a Resolver.
type Options struct {
	// MaxDepth is the maximum recursion depth (DefaultMaxDepth if <= 0,
	// except when MaxDepthSet forces an explicit zero).
	MaxDepth    int
	MaxDepthSet bool

	// Cache is the shared memoization manager. A default-sized one is
	// created when nil.
	Cache *typecache.Manager

	// Hooks is the plugin subsystem's executor. hooks.Nop when nil.
	Hooks hooks.Executor

	// Diagnostics receives degrade-and-warn reports. May be nil.
	Diagnostics *diagnostic.Collector

	// UtilityPatterns extends the built-in utility transformation names.
	UtilityPatterns []string
}

// Resolver resolves type descriptors. One Resolver owns one visited set and
// must not be shared across concurrent top-level call chains; sharing
// corrupts cycle detection. The cache manager may be shared.
type Resolver struct {
	maxDepth   int
	cache      *typecache.Manager
	hooks      hooks.Executor
	diags      *diagnostic.Collector
	utility    *utilityExpander
	strategies []strategy
	visiting   map[string]bool
}

// New creates a Resolver.
func New(opts Options) (*Resolver, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 && !opts.MaxDepthSet {
		maxDepth = DefaultMaxDepth
	}

	cache := opts.Cache
	if cache == nil {
		var err error
		cache, err = typecache.New(0)
		if err != nil {
			return nil, err
		}
		cache.SetDiagnostics(opts.Diagnostics)
	}

	executor := opts.Hooks
	if executor == nil {
		executor = hooks.Nop{}
	}

	utility := newUtilityExpander(opts.UtilityPatterns)
	return &Resolver{
		maxDepth: maxDepth,
		cache:    cache,
		hooks:    executor,
		diags:    opts.Diagnostics,
		utility:  utility,
		strategies: []strategy{
			utility,
			conditionalResolver{},
			mappedResolver{},
			templateLiteralResolver{},
		},
		visiting: make(map[string]bool),
	}, nil
}

// Cache returns the resolver's cache manager.
func (r *Resolver) Cache() *typecache.Manager { return r.cache }

// ClearVisited resets cycle-detection state between independent runs.
func (r *Resolver) ClearVisited() {
	r.visiting = make(map[string]bool)
}

// ResolveType resolves one descriptor at the given depth. gctx tracks the
// request's generic parameters and may be nil; pass one instance per
// top-level extraction request. Any structural failure aborts the whole
// subtree — no partial TypeInfo is returned.
func (r *Resolver) ResolveType(ctx context.Context, t descriptor.Type, depth int, gctx *generics.Context) (result typeinfo.TypeInfo, err error) {
	if t == nil {
		return typeinfo.Unknown(), nil
	}

	// The descriptor surface is foreign code; a panic there surfaces as a
	// typed failure instead of tearing down the generation run.
	defer func() {
		if rec := recover(); rec != nil {
			result = typeinfo.TypeInfo{}
			err = &InternalError{Op: "resolveType", Err: fmt.Errorf("%v", rec)}
		}
	}()

	text := normalizeTypeText(t.Text())
	key := r.cache.Key(text, gctx)
	if cached, ok := r.cache.Get(key); ok {
		return cached, nil
	}

	if depth > r.maxDepth {
		return typeinfo.TypeInfo{}, fmt.Errorf("%w: depth %d over limit %d resolving %s", ErrDepthExceeded, depth, r.maxDepth, text)
	}

	// Cycle guard: a descriptor already being resolved higher up the stack
	// resolves to a reference instead of recursing forever.
	if r.visiting[text] {
		return typeinfo.Reference(text), nil
	}
	r.visiting[text] = true
	defer delete(r.visiting, text)

	ev := hooks.Event{Type: t, Symbol: t.Symbol()}
	if hookErr := r.hooks.ExecuteBeforeResolve(ctx, ev); hookErr != nil {
		return typeinfo.TypeInfo{}, &HookError{Hook: hooks.BeforeResolve, Err: hookErr}
	}

	rc := &resolveContext{
		depth:    depth,
		generics: gctx,
		resolve: func(ctx context.Context, t descriptor.Type, depth int) (typeinfo.TypeInfo, error) {
			return r.ResolveType(ctx, t, depth, gctx)
		},
	}

	claimed := false
	for _, s := range r.strategies {
		out, strategyErr := s.tryResolve(ctx, t, rc)
		if strategyErr != nil {
			return typeinfo.TypeInfo{}, strategyErr
		}
		if out != nil {
			result = *out
			claimed = true
			break
		}
	}
	if !claimed {
		var classifyErr error
		result, classifyErr = r.classify(ctx, t, rc)
		if classifyErr != nil {
			return typeinfo.TypeInfo{}, classifyErr
		}
	}

	result, err = r.hooks.ExecuteAfterResolve(ctx, ev, result)
	if err != nil {
		return typeinfo.TypeInfo{}, &HookError{Hook: hooks.AfterResolve, Err: err}
	}

	r.cache.Set(key, result)
	return result, nil
}

// classify handles descriptors no strategy claimed: the shapes the checker
// has fully reduced.
func (r *Resolver) classify(ctx context.Context, t descriptor.Type, rc *resolveContext) (typeinfo.TypeInfo, error) {
	flags := t.Flags()

	switch {
	case flags&descriptor.FlagsUnion != 0:
		members, err := r.resolveMembers(ctx, t.Members(), rc)
		if err != nil {
			return typeinfo.TypeInfo{}, err
		}
		return typeinfo.TypeInfo{Kind: typeinfo.KindUnion, UnionTypes: members}, nil

	case flags&descriptor.FlagsIntersection != 0:
		members, err := r.resolveMembers(ctx, t.Members(), rc)
		if err != nil {
			return typeinfo.TypeInfo{}, err
		}
		return typeinfo.TypeInfo{Kind: typeinfo.KindIntersection, IntersectionTypes: members}, nil

	case flags&(descriptor.FlagsStringLiteral|descriptor.FlagsNumberLiteral|descriptor.FlagsBooleanLiteral) != 0:
		return typeinfo.TypeInfo{Kind: typeinfo.KindLiteral, Literal: t.LiteralValue()}, nil

	case flags&(descriptor.FlagsEnum|descriptor.FlagsEnumLiteral) != 0:
		name := enumNameFallback
		if sym := t.Symbol(); sym != nil && !descriptor.IsAnonymousName(sym.Name) {
			name = sym.Name
		}
		return typeinfo.TypeInfo{Kind: typeinfo.KindEnum, Name: name}, nil

	case flags&descriptor.FlagsString != 0:
		return typeinfo.Primitive("string"), nil
	case flags&descriptor.FlagsNumber != 0:
		return typeinfo.Primitive("number"), nil
	case flags&descriptor.FlagsBoolean != 0:
		return typeinfo.Primitive("boolean"), nil
	case flags&descriptor.FlagsUndefined != 0:
		return typeinfo.Primitive("undefined"), nil
	case flags&descriptor.FlagsNull != 0:
		return typeinfo.Primitive("null"), nil
	case flags&descriptor.FlagsAny != 0:
		return typeinfo.Primitive("any"), nil

	case flags&descriptor.FlagsTypeParameter != 0:
		name := normalizeTypeText(t.Text())
		if sym := t.Symbol(); sym != nil && !descriptor.IsAnonymousName(sym.Name) {
			name = sym.Name
		}
		if rc.generics != nil {
			rc.generics.RegisterParam(generics.Param{Name: name})
		}
		return typeinfo.Generic(name), nil

	case flags&descriptor.FlagsTemplateLiteral != 0:
		// Closed template literal: the strategy passed, so every slot is
		// concrete. Render it the way the generator consumes it — a string
		// with a match pattern.
		result := typeinfo.Primitive("string")
		result.TemplatePattern = renderTemplatePattern(t)
		return result, nil

	case flags&descriptor.FlagsObject != 0:
		if elem := t.ElementType(); elem != nil {
			resolved, err := r.ResolveType(ctx, elem, rc.depth+1, rc.generics)
			if err != nil {
				return typeinfo.TypeInfo{}, err
			}
			return typeinfo.TypeInfo{Kind: typeinfo.KindArray, ElementType: &resolved}, nil
		}
		if t.IsTuple() {
			elements, err := r.resolveMembers(ctx, t.TupleElements(), rc)
			if err != nil {
				return typeinfo.TypeInfo{}, err
			}
			return typeinfo.TypeInfo{Kind: typeinfo.KindTuple, Elements: elements}, nil
		}
		if t.IsCallable() && len(t.Properties()) == 0 {
			result := typeinfo.TypeInfo{Kind: typeinfo.KindFunction}
			if sym := t.Symbol(); sym != nil && !descriptor.IsAnonymousName(sym.Name) {
				result.Name = sym.Name
			}
			return result, nil
		}
		return r.classifyObject(ctx, t, rc)

	default:
		r.diags.Warn(diagnostic.CategoryTypeUnsupported, normalizeTypeText(t.Text()),
			"no classification matched; treating as unknown")
		return typeinfo.Unknown(), nil
	}
}

// resolveMembers resolves a slice of descriptors in declared order.
func (r *Resolver) resolveMembers(ctx context.Context, members []descriptor.Type, rc *resolveContext) ([]typeinfo.TypeInfo, error) {
	out := make([]typeinfo.TypeInfo, 0, len(members))
	for _, m := range members {
		resolved, err := r.ResolveType(ctx, m, rc.depth+1, rc.generics)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

// classifyObject builds the Object variant: properties, generic parameters,
// index signature, type arguments.
func (r *Resolver) classifyObject(ctx context.Context, t descriptor.Type, rc *resolveContext) (typeinfo.TypeInfo, error) {
	// An alias whose target is an unreduced utility application resolves as
	// the utility detection, not as an empty object.
	if al := t.Alias(); al != nil && al.Target != nil {
		out, err := r.utility.tryResolve(ctx, al.Target, rc)
		if err != nil {
			return typeinfo.TypeInfo{}, err
		}
		if out != nil {
			return *out, nil
		}
	}

	name := ""
	sourceFile := ""
	if sym := t.Symbol(); sym != nil && !descriptor.IsAnonymousName(sym.Name) {
		name = sym.Name
		sourceFile = sym.SourceFile
	}
	if name == "" {
		if al := t.Alias(); al != nil && !descriptor.IsAnonymousName(al.Symbol.Name) {
			name = al.Symbol.Name
			sourceFile = al.Symbol.SourceFile
		}
	}

	ev := hooks.Event{Type: t, Symbol: t.Symbol()}

	var properties []typeinfo.PropertyInfo
	seen := make(map[string]bool)
	for _, prop := range t.Properties() {
		if seen[prop.Name] {
			continue
		}
		seen[prop.Name] = true

		propType, err := r.ResolveType(ctx, prop.Type, rc.depth+1, rc.generics)
		if err != nil {
			return typeinfo.TypeInfo{}, &PropertyError{TypeName: displayName(name, t), Property: prop.Name, Err: err}
		}

		info := typeinfo.PropertyInfo{
			Name:     prop.Name,
			Type:     propType,
			Optional: prop.Optional,
			Readonly: prop.Readonly,
			JSDoc:    prop.JSDoc,
		}
		info, err = r.hooks.ExecuteTransformProperty(ctx, ev, info)
		if err != nil {
			return typeinfo.TypeInfo{}, &HookError{Hook: hooks.TransformProperty, Err: err}
		}
		properties = append(properties, info)
	}

	genericParams, unresolved, err := r.extractGenericParams(ctx, t, rc)
	if err != nil {
		return typeinfo.TypeInfo{}, err
	}

	result := typeinfo.TypeInfo{
		Kind:               typeinfo.KindObject,
		Name:               name,
		Properties:         properties,
		GenericParams:      genericParams,
		UnresolvedGenerics: unresolved,
		SourceFile:         sourceFile,
	}

	if infos := t.IndexInfos(); len(infos) > 0 {
		info := infos[0]
		valueType, err := r.ResolveType(ctx, info.ValueType(), rc.depth+1, rc.generics)
		if err != nil {
			return typeinfo.TypeInfo{}, err
		}
		result.IndexSignature = &typeinfo.IndexSignature{
			KeyType:   info.KeyType(),
			ValueType: valueType,
			Readonly:  info.Readonly(),
		}
	}

	if args := t.TypeArguments(); len(args) > 0 {
		resolved, err := r.resolveMembers(ctx, args, rc)
		if err != nil {
			return typeinfo.TypeInfo{}, err
		}
		result.TypeArguments = resolved
	}

	return result, nil
}

// extractGenericParams reads the type's declared generic parameters,
// resolving constraints and defaults, and registers each with the request's
// generic context. Only the declaration read itself is best-effort: an
// introspection failure degrades to an empty parameter list with a warning.
// A failure while resolving a constraint or default is a recursive
// resolution failure and aborts the whole type.
func (r *Resolver) extractGenericParams(ctx context.Context, t descriptor.Type, rc *resolveContext) ([]typeinfo.GenericParam, []string, error) {
	declared, err := t.TypeParameters()
	if err != nil {
		r.diags.Warn(diagnostic.CategoryGenericIntrospection, normalizeTypeText(t.Text()),
			fmt.Sprintf("could not read generic parameters: %v", err))
		return nil, nil, nil
	}
	if len(declared) == 0 {
		return nil, nil, nil
	}

	params := make([]typeinfo.GenericParam, 0, len(declared))
	var unresolved []string
	for _, tp := range declared {
		param := typeinfo.GenericParam{Name: tp.Name}

		if tp.Constraint != nil {
			resolved, err := r.ResolveType(ctx, tp.Constraint, rc.depth+1, rc.generics)
			if err != nil {
				return nil, nil, fmt.Errorf("resolving constraint of %q: %w", tp.Name, err)
			}
			param.Constraint = &resolved
		}
		if tp.Default != nil {
			resolved, err := r.ResolveType(ctx, tp.Default, rc.depth+1, rc.generics)
			if err != nil {
				return nil, nil, fmt.Errorf("resolving default of %q: %w", tp.Name, err)
			}
			param.Default = &resolved
		}

		if rc.generics != nil {
			rc.generics.RegisterParam(generics.Param{
				Name:       tp.Name,
				Constraint: param.Constraint,
				Default:    param.Default,
			})
			if _, bound := rc.generics.ResolvedType(tp.Name); !bound {
				unresolved = append(unresolved, tp.Name)
			}
		} else {
			unresolved = append(unresolved, tp.Name)
		}
		params = append(params, param)
	}

	return params, unresolved, nil
}

// displayName returns a readable name for errors: the declared name, else
// the descriptor text.
func displayName(name string, t descriptor.Type) string {
	if name != "" {
		return name
	}
	return normalizeTypeText(t.Text())
}

// renderTemplatePattern converts a closed template-literal type into an
// anchored regex, e.g. `id_${string}` into "^id_.*$". Number slots match a
// numeric literal; everything else matches any text.
func renderTemplatePattern(t descriptor.Type) string {
	texts := t.TemplateTexts()
	slots := t.TemplateSlots()
	if len(texts) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("^")
	for i, text := range texts {
		sb.WriteString(regexp.QuoteMeta(text))
		if i < len(slots) {
			if slots[i].Flags()&descriptor.FlagsNumber != 0 {
				sb.WriteString(`[+-]?(\d+\.?\d*|\.\d+)`)
			} else {
				sb.WriteString(".*")
			}
		}
	}
	sb.WriteString("$")
	return sb.String()
}
