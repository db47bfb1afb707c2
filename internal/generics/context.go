// Package generics tracks the generic parameters in scope for one top-level
// extraction request and their resolved bindings. A Context must not be
// shared across unrelated requests; create one per request and discard it.
package generics

import "github.com/tsforge/tsforge/internal/typeinfo"

// Param is one registered generic parameter.
type Param struct {
	Name       string
	Constraint *typeinfo.TypeInfo
	Default    *typeinfo.TypeInfo
}

// Context records generic parameter declarations and their current bindings.
type Context struct {
	params map[string]Param
	order  []string
	args   map[string]typeinfo.TypeInfo
}

// NewContext creates an empty generic context.
func NewContext() *Context {
	return &Context{
		params: make(map[string]Param),
		args:   make(map[string]typeinfo.TypeInfo),
	}
}

// RegisterParam registers a parameter for the current scope. Registration is
// idempotent: re-registering an existing name keeps the first declaration
// (constraints discovered later never silently replace earlier ones).
func (c *Context) RegisterParam(p Param) {
	if _, ok := c.params[p.Name]; ok {
		return
	}
	c.params[p.Name] = p
	c.order = append(c.order, p.Name)
}

// SetTypeArgument binds a registered parameter to a concrete type. Binding an
// unknown name registers it first, so discovery order does not matter.
func (c *Context) SetTypeArgument(name string, t typeinfo.TypeInfo) {
	c.RegisterParam(Param{Name: name})
	c.args[name] = t
}

// IsParam reports whether name is a registered generic parameter.
func (c *Context) IsParam(name string) bool {
	_, ok := c.params[name]
	return ok
}

// ResolvedType returns the binding for a parameter, if one was set.
func (c *Context) ResolvedType(name string) (typeinfo.TypeInfo, bool) {
	t, ok := c.args[name]
	return t, ok
}

// Params returns all registered parameters in registration order.
func (c *Context) Params() []Param {
	out := make([]Param, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.params[name])
	}
	return out
}

// Reset clears all parameters and bindings so the context can be reused for
// an independent request.
func (c *Context) Reset() {
	c.params = make(map[string]Param)
	c.order = nil
	c.args = make(map[string]typeinfo.TypeInfo)
}
