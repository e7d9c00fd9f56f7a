package forth

import "github.com/pkg/errors"

// ThrowCode is a Forth exception code as used by THROW/CATCH. Zero means no
// exception.
type ThrowCode int32

// Error implements the error interface so ThrowCode can be returned,
// wrapped and matched with errors.Is/errors.As like any other Go error.
func (c ThrowCode) Error() string {
	if d, ok := throwDescriptions[c]; ok {
		return d
	}
	return errors.Errorf("throw code %d", int32(c)).Error()
}

// Standard throw codes recognized by this engine and its host shell, per
// the exception protocol's error catalogue.
const (
	ThrowAbort            ThrowCode = -1
	ThrowAbortMessage     ThrowCode = -2
	ThrowStackOverflow    ThrowCode = -3
	ThrowStackUnderflow   ThrowCode = -4
	ThrowInvalidMemory    ThrowCode = -9
	ThrowDivideByZero     ThrowCode = -10
	ThrowResultOutOfRange ThrowCode = -11
	ThrowUndefinedWord    ThrowCode = -13
	ThrowCompileOnlyWord  ThrowCode = -14
	ThrowUserInterrupt    ThrowCode = -28
)

var throwDescriptions = map[ThrowCode]string{
	ThrowAbort:            "aborted",
	ThrowAbortMessage:     "aborted",
	ThrowStackOverflow:    "stack overflow",
	ThrowStackUnderflow:   "stack underflow",
	ThrowInvalidMemory:    "invalid memory address",
	ThrowDivideByZero:     "division by zero",
	ThrowResultOutOfRange: "result out of range",
	ThrowUndefinedWord:    "undefined word",
	ThrowCompileOnlyWord:  "interpreting a compile-only word",
	ThrowUserInterrupt:    "user interrupt",
}

// throwPanic is the internal panic payload used to unwind to the nearest
// CATCH. It carries the numeric code that THROW was given.
type throwPanic struct {
	code Cell
}

// throwf raises a throwPanic built from a ThrowCode, turning an internal
// fault into a catchable Forth exception.
func throwf(code ThrowCode) {
	panic(throwPanic{code: Cell(code)})
}

// recoverFault translates host-level faults (index out of range, nil
// pointer dereference, integer divide by zero not already checked by a
// primitive) into the matching throw code. The protocol CATCH and
// InterpretCatching expose to Forth source carries only a numeric code, so
// there is no wider error value to return the fault in; ThrowInvalidMemory
// is the closest standard code for "the host itself faulted".
func recoverFault(e interface{}) throwPanic {
	if tp, ok := e.(throwPanic); ok {
		return tp
	}
	return throwPanic{code: Cell(ThrowInvalidMemory)}
}
