package forth_test

// Scripted "source in, output out" integration tests: build an engine
// with output captured in a buffer, feed it a line of source, and compare
// against the literal banner text a REPL would have printed.

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mpx/threadforth/forth"
)

// runLine submits one line of source against a fresh engine and returns its
// captured output followed by the usual ok/error banner.
func runLine(src string) string {
	var buf bytes.Buffer
	e, err := forth.New(forth.Output(&buf))
	if err != nil {
		panic(err)
	}
	e.SetLine(src)
	code := e.InterpretCatching()
	if code == 0 {
		buf.WriteString("  ok")
	} else {
		fmt.Fprintf(&buf, "error: %d %s", int32(code), code.Error())
	}
	return strings.TrimRight(buf.String(), "\r\n")
}

func ExampleEngine_arithmetic() {
	fmt.Println(runLine("2 3 + ."))
	// Output: 5   ok
}

func ExampleEngine_colonDefinition() {
	fmt.Println(runLine(": SQ DUP * ;  7 SQ ."))
	// Output: 49   ok
}

func ExampleEngine_doLoop() {
	fmt.Println(runLine(": T 5 0 DO I . LOOP ;  T"))
	// Output: 0 1 2 3 4   ok
}

func ExampleEngine_catchOnEmptyStack() {
	fmt.Println(runLine("' DROP CATCH ."))
	// Output: -4   ok
}

func ExampleEngine_immediateAndPostpone() {
	fmt.Println(runLine(": MY-IF POSTPONE IF ; IMMEDIATE  : U 1 MY-IF 42 THEN ;  U ."))
	// Output: 42   ok
}

func ExampleEngine_createDoes() {
	fmt.Println(runLine(": CONST CREATE , DOES> @ ;  99 CONST X  X ."))
	// Output: 99   ok
}

func ExampleEngine_undefinedWordThrows() {
	fmt.Println(runLine("BOGUSWORD"))
	// Output: error: -13 undefined word
}

func ExampleEngine_catchRestoresStackDepth() {
	fmt.Println(runLine(": BAD 1 2 3 ABORT ;  DEPTH ' BAD CATCH DROP DEPTH - ."))
	// Output: -1   ok
}
