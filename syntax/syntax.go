// Package syntax defines the syntax tree produced by the parser and consumed
// read-only by the semantic analyzer and the code generator. Lexing and
// parsing themselves are out of scope for this module: a parser generator is
// expected to build these trees from source text, the same way the teacher's
// goyacc grammar builds ir.Node trees for its own frontend package.
package syntax

// Type is the declared type of a scalar, parameter, or function return value.
type Type int

const (
	Int Type = iota
	Void
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Void:
		return "void"
	default:
		return "unknown"
	}
}

// Program is the root of a syntax tree: an ordered list of global variable
// declarations followed by an ordered list of function declarations.
type Program struct {
	Globals []VarDecl
	Funcs   []*FunctionDecl
}

// VarDecl is the tagged-variant interface for a scalar or array variable
// declaration. It is implemented by ScalarVarDecl and ArrayVarDecl.
type VarDecl interface {
	varDecl()
	DeclName() string
}

// ScalarVarDecl declares a single int-typed variable.
type ScalarVarDecl struct {
	Type Type
	Name string
}

func (ScalarVarDecl) varDecl()           {}
func (d ScalarVarDecl) DeclName() string { return d.Name }

// ArrayVarDecl declares a fixed-size array of Size elements, Size >= 1.
type ArrayVarDecl struct {
	Type Type
	Name string
	Size int
}

func (ArrayVarDecl) varDecl()           {}
func (d ArrayVarDecl) DeclName() string { return d.Name }

// Param is the tagged-variant interface for a function parameter.
// ArrayRefParam is a by-reference array parameter of unspecified length.
type Param interface {
	param()
	ParamName() string
}

// ScalarParam is a pass-by-value int parameter.
type ScalarParam struct {
	Type Type
	Name string
}

func (ScalarParam) param()            {}
func (p ScalarParam) ParamName() string { return p.Name }

// ArrayRefParam is a by-reference array parameter.
type ArrayRefParam struct {
	Type Type
	Name string
}

func (ArrayRefParam) param()            {}
func (p ArrayRefParam) ParamName() string { return p.Name }

// FunctionDecl declares a function's signature and body. Functions are not
// forward-declared: the body is always present, and the name becomes
// visible to itself (for recursion) and to every sibling function via the
// analyzer's and code generator's function-signature pre-pass.
type FunctionDecl struct {
	ReturnType Type
	Name       string
	Params     []Param
	Body       *CompoundStmt
}
