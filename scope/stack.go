// Package scope provides a lexical scope stack used by both the semantic
// analyzer and the code generator to resolve names through nested blocks.
// It is a generalization of the teacher's util.Stack: the same linked chain
// of frames from innermost to outermost, but parameterized over the value
// type each pass actually needs (a *sema.Symbol for the analyzer, a
// codegen.Storage handle for the generator) instead of interface{}, and
// stripped of the teacher's mutex since this core runs single-threaded
// (spec §5 rules out concurrent codegen, unlike the teacher's worker pool).
package scope

// Stack is a chain of lexical scope frames mapping names of type V. The
// zero value is an empty stack ready to use.
type Stack[V any] struct {
	top *frame[V]
}

type frame[V any] struct {
	depth   int
	parent  *frame[V]
	names   map[string]V
}

// Enter pushes a fresh, empty scope. Its depth is one greater than the
// scope it nests inside, or 0 if the stack was empty.
func (s *Stack[V]) Enter() {
	depth := 0
	if s.top != nil {
		depth = s.top.depth + 1
	}
	s.top = &frame[V]{depth: depth, parent: s.top, names: make(map[string]V)}
}

// Leave pops the innermost scope. Leave on an empty stack panics: it
// indicates a bug in the caller's enter/leave balancing, not a condition a
// well-formed tree can trigger.
func (s *Stack[V]) Leave() {
	if s.top == nil {
		panic("scope: Leave called with no scope entered")
	}
	s.top = s.top.parent
}

// Insert binds name to v in the innermost scope. It returns false without
// mutating the stack if name is already bound in that same scope; the
// caller decides what that means (usually a failure).
func (s *Stack[V]) Insert(name string, v V) bool {
	if s.top == nil {
		panic("scope: Insert called with no scope entered")
	}
	if _, ok := s.top.names[name]; ok {
		return false
	}
	s.top.names[name] = v
	return true
}

// Lookup searches the innermost scope first, then each parent in turn,
// returning the nearest binding for name.
func (s *Stack[V]) Lookup(name string) (V, bool) {
	for f := s.top; f != nil; f = f.parent {
		if v, ok := f.names[name]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Depth returns the depth of the innermost scope, or -1 if the stack is
// empty.
func (s *Stack[V]) Depth() int {
	if s.top == nil {
		return -1
	}
	return s.top.depth
}
