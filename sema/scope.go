package sema

import "minic/scope"

// scopeStack is the analyzer's own scope.Stack instantiation, holding
// *Symbol entries. It never shares state with the code generator's scope
// stack (codegen uses its own scope.Stack[codegen.Storage] instance, built
// independently during a second traversal of the same tree).
type scopeStack = scope.Stack[*Symbol]
