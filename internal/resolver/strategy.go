package resolver

import (
	"context"
	"regexp"
	"strings"

	"github.com/tsforge/tsforge/internal/descriptor"
	"github.com/tsforge/tsforge/internal/generics"
	"github.com/tsforge/tsforge/internal/typeinfo"
)

// strategy is one claim-or-pass resolution step. The orchestrator runs
// strategies in fixed priority; the first to return a non-nil TypeInfo wins
// and a (nil, nil) return defers to the next stage. Strategies only detect
// constructs the host compiler left structurally unresolved — they never
// compute type-system semantics.
type strategy interface {
	name() string
	tryResolve(ctx context.Context, t descriptor.Type, rc *resolveContext) (*typeinfo.TypeInfo, error)
}

// resolveContext carries the per-call state a strategy may need: the current
// depth, the request's generic context, and a callback into the orchestrator
// for recursive resolution.
type resolveContext struct {
	depth    int
	generics *generics.Context
	resolve  func(ctx context.Context, t descriptor.Type, depth int) (typeinfo.TypeInfo, error)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalizeTypeText collapses whitespace so the same construct always yields
// the same identity regardless of how the host compiler printed it.
func normalizeTypeText(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// intrinsicNames are identifiers that can appear inside angle brackets but
// never denote a generic parameter.
var intrinsicNames = map[string]bool{
	"string": true, "number": true, "boolean": true, "bigint": true,
	"symbol": true, "object": true, "any": true, "unknown": true,
	"never": true, "void": true, "null": true, "undefined": true,
	"true": true, "false": true, "keyof": true, "typeof": true,
	"extends": true, "infer": true, "in": true, "readonly": true,
	"Array": true, "ReadonlyArray": true, "Promise": true,
}

var (
	identifierToken = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
	quotedSegment   = regexp.MustCompile("'[^']*'|\"[^\"]*\"|`[^`]*`")
)

// hasOpenGenerics reports whether the text still carries angle brackets with
// at least one generic-parameter-like identifier inside.
func hasOpenGenerics(text string, skip map[string]bool) bool {
	return len(genericParamTokens(text, skip)) > 0
}

var bareParamToken = regexp.MustCompile(`\b[A-Z][0-9]?\b`)

// looksGeneric reports whether the textual form still reads as generic:
// open parameters in angle brackets, a mapped-type key clause, or a bare
// single-letter parameter name anywhere in the text.
func looksGeneric(text string) bool {
	if hasOpenGenerics(text, nil) {
		return true
	}
	if strings.Contains(text, " in keyof ") {
		return true
	}
	return bareParamToken.MatchString(quotedSegment.ReplaceAllString(text, ""))
}

// genericParamTokens returns the bare identifier tokens found inside the
// outermost angle brackets of text, minus intrinsics and the names in skip.
// These are the identifiers that look like still-open generic parameters.
func genericParamTokens(text string, skip map[string]bool) []string {
	open := strings.Index(text, "<")
	close := strings.LastIndex(text, ">")
	if open < 0 || close <= open {
		return nil
	}
	// String-literal keys ('id', "name") are not parameter candidates.
	inner := quotedSegment.ReplaceAllString(text[open+1:close], "")

	var tokens []string
	seen := make(map[string]bool)
	for _, tok := range identifierToken.FindAllString(inner, -1) {
		if intrinsicNames[tok] || skip[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	return tokens
}
