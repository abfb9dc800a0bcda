package sema

// Error wraps one of the fixed, closed-set failure reasons the analyzer can
// report. The analyzer stops at the first failure; there is no multi-error
// reporting and no source-location tracking beyond the reason string
// itself.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func fail(reason string) error {
	return &Error{Reason: reason}
}

// The closed set of failure reasons. Some are reported by more than one
// check (for example, ReasonDuplicateVarDecl covers globals, parameters
// and locals alike).
const (
	ReasonDuplicateVarDecl       = "Duplicate variable declaration"
	ReasonInvalidFunctionName    = "Invalid function name"
	ReasonAssignUndeclaredVar    = "Assignment to undeclared variable"
	ReasonAssignUndeclaredArray  = "Assignment to undeclared array"
	ReasonCallNonFunction        = "Attempt to call non-function"
	ReasonArgCountMismatch       = "Incorrect number of arguments in function call"
	ReasonArgExpectedInt         = "Attempted to pass non-int, but int was expected"
	ReasonArgExpectedArray       = "Attempted to pass int, but array was expected"
	ReasonOpNonInt               = "Attempt to perform an operation with non-Ints"
	ReasonReturnNonInt           = "Attempt to return a non-Int value"
	ReasonWhileCondNonInt        = "Use of non-Int in while statement condition"
	ReasonIfCondNonInt           = "Use of non-Int in if statement condition"
	ReasonAssignArrayToInt       = "Attempt to assign an array to an Int"
	ReasonAssignVoid             = "Attempt to assign void to a variable"
	ReasonAssignToFuncOrArray    = "Attempted to assign to either a function or array"
	ReasonUseFunctionAsVariable  = "Attempted to use a function as a variable"
	ReasonIndexNonInt            = "Attempt to index array by non-Int"
	// ReasonReturnValueInVoidFunc is additive to spec.md's closed taxonomy:
	// it resolves the Void-return Open Question (SPEC_FULL.md §9) in favor
	// of the stricter contract, rejecting a well-typed Int return inside a
	// Void function.
	ReasonReturnValueInVoidFunc = "Attempt to return a value from a Void function"
	// ReasonIndexNonArray is additive to spec.md's closed taxonomy, grounded
	// on original_source/src/typecheck.rs's handle_var: reading an indexed
	// element of a name that resolves to neither Array nor ArrayParameter (a
	// plain Variable or a Function) is a distinct failure from
	// ReasonUseFunctionAsVariable, which is reserved for reading a function
	// name as a bare scalar. An indexed assignment target of that kind
	// reports ReasonAssignToFuncOrArray instead.
	ReasonIndexNonArray = "Attempted to use either a function or a variable as an array"
)
