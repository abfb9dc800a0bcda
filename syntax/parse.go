package syntax

// Parse turns source text into a Program. It is the seam spec.md §1/§6.1
// names as an external collaborator: "a parser generator produces the
// syntax tree from source text; the core consumes that tree." This
// module never implements a lexer or parser itself — Parse is a
// package-level hook, left nil here, that a generated parser (goyacc,
// ANTLR, LALRPOP-equivalent, or hand-written recursive descent) is
// expected to assign during its own init() before driver.Run is called.
//
// Analogous to how database/sql registers drivers rather than importing
// one directly: the core depends on the *shape* of the contract (bytes
// in, *Program out, or a syntax error), never on a concrete grammar.
var Parse func(src []byte) (*Program, error)
