package sema

import "minic/syntax"

// Kind tags the variety of a symbol-table entry.
type Kind int

const (
	// Variable is a scalar int, either a global or a local (including
	// scalar function parameters).
	Variable Kind = iota
	// Array is an owned fixed-size array, either global or local.
	Array
	// ArrayParameter is a by-reference array parameter of unspecified
	// length.
	ArrayParameter
	// Function is a function signature.
	Function
)

// ParamKind records whether a function's declared parameter is scalar or
// an array reference, without keeping the parameter's name: the analyzer
// only needs this to check call-site argument types.
type ParamKind int

const (
	ParamScalar ParamKind = iota
	ParamArray
)

// Symbol is one entry in a scope. Which fields are meaningful depends on
// Kind: Size is only set for Array, ReturnType/Params only for Function.
type Symbol struct {
	Kind       Kind
	Size       int
	Depth      int
	ReturnType syntax.Type
	Params     []ParamKind
}

// ValueType is the type an expression evaluates to during semantic
// analysis. It is a superset of syntax.Type: an expression can also denote
// an whole array (e.g. a bare array name), or have no value at all (a call
// to a Void function).
type ValueType int

const (
	TInt ValueType = iota
	TArray
	TVoid
)
