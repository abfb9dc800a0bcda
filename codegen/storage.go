package codegen

import "tinygo.org/x/go-llvm"

// Storage is a name's IR binding inside the generator's own scope stack.
// Addr is always the pointer a load or store operates on; Type is the
// type Addr points to.
//
// Two shapes share this struct: an owned scalar or array (Addr is an
// alloca or a global, Type is the int type or the [N x int] array type,
// Size is N for an array and 0 for a scalar) and an array-by-reference
// parameter (Addr is the incoming pointer itself, Type is the element
// type, Size is always 0 — the length isn't known at this scope).
// IsArrayParam tells the two apart for addressing: a by-reference
// parameter indexes with a single GEP index, an owned array with two
// (see lowerIndexAddr).
type Storage struct {
	Addr         llvm.Value
	Type         llvm.Type
	Size         int
	IsArrayParam bool
}
