// Package scope maps names to LValues with lazy, emit-time resolution
// (spec.md §4.3): a stack of frames, innermost-first lookup, and a
// deferred "promise" form so a function body may reference a name defined
// later in the same module. Grounded on the forward-declared-label idiom
// of nspcc-dev/neo-go's codegen (pkg/compiler/codegen.go's funcScope/
// labels map, allocated before the code that resolves them exists) and on
// the teacher's plain-struct, no-generics style.
package scope

import "fmt"

// Scope is a stack of frames mapping names to LValues. The bottom frame is
// module scope (globals, function names); the emitter pushes one frame per
// function body, holding its parameters, autos and extrns.
type Scope struct {
	frames []map[string]LValue
}

// New returns a Scope with a single, empty module-scope frame.
func New() *Scope {
	return &Scope{frames: []map[string]LValue{{}}}
}

// Push opens a new innermost frame.
func (s *Scope) Push() {
	s.frames = append(s.frames, map[string]LValue{})
}

// Pop discards the innermost frame.
func (s *Scope) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Define binds name to lvalue in the innermost frame. Redefining a name
// already bound in that same frame is an error; shadowing a name bound in
// an outer frame is allowed.
func (s *Scope) Define(name string, lvalue LValue) error {
	frame := s.frames[len(s.frames)-1]
	if _, exists := frame[name]; exists {
		return DuplicateDefinitionError{Name: name}
	}
	frame[name] = lvalue
	return nil
}

// Lookup searches frames innermost-first and returns the bound LValue, or
// an UndefinedNameError if name is bound nowhere yet. Used when a name
// must already be resolvable (e.g. immediately after the module pre-pass).
func (s *Scope) Lookup(name string) (LValue, error) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if lvalue, ok := s.frames[i][name]; ok {
			return lvalue, nil
		}
	}
	return nil, UndefinedNameError{Name: name}
}

// LookupLazy returns a Future that resolves name against the current frame
// stack the first time Get is called, not when LookupLazy itself is
// called. This is how a function may reference a global defined later in
// the same file (spec.md §4.3's "Forward references"): the module pre-pass
// populates every top-level name before any function body's Futures are
// ever resolved.
func (s *Scope) LookupLazy(name string) *Future {
	return &Future{name: name, scope: s}
}

// Future is a deferred name resolution, forced on first Get.
type Future struct {
	name    string
	scope   *Scope
	resolved bool
	lvalue  LValue
	err     error
}

// Get resolves the Future against its Scope's current frames, caching the
// result so repeated Gets (e.g. both a fetch and a later store through the
// same NameExpr) don't re-walk the frame stack.
func (f *Future) Get() (LValue, error) {
	if !f.resolved {
		f.lvalue, f.err = f.scope.Lookup(f.name)
		f.resolved = true
	}
	return f.lvalue, f.err
}

// DuplicateDefinitionError is Define failing on an already-bound name in
// the same frame.
type DuplicateDefinitionError struct {
	Name string
}

func (e DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("💥 duplicate definition: %q is already defined in this scope", e.Name)
}

// UndefinedNameError is a Future (or an eager Lookup) finding no binding
// for a name anywhere in the frame stack.
type UndefinedNameError struct {
	Name string
}

func (e UndefinedNameError) Error() string {
	return fmt.Sprintf("💥 undefined name: %q", e.Name)
}
