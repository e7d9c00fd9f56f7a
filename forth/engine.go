package forth

import (
	"bufio"
	"io"
	"time"

	"github.com/pkg/errors"
)

// Fixed low-memory layout for the input-state cells and TIB, mirroring the
// source kernel's allot-at-startup scheme. Everything from addrHereInit
// onward is free for ALLOT/,/C, and user CREATE data fields.
const (
	addrTIB     = 0
	tibSize     = 256
	addrSourceA = addrTIB + tibSize
	addrSourceC = addrSourceA + 4
	addrToIn    = addrSourceC + 4
	addrBase    = addrToIn + 4
	addrState   = addrBase + 4

	addrHereInit = addrState + 4
)

const (
	defaultDataStack   = 1024
	defaultReturnStack = 1024
)

// Option configures an Engine at construction time.
type Option func(*Engine) error

// DataStackSize sets the data stack capacity, in cells.
func DataStackSize(n int) Option {
	return func(e *Engine) error {
		if n <= 0 {
			return errors.Errorf("data stack size must be positive, got %d", n)
		}
		e.data = make([]Cell, 0, n)
		return nil
	}
}

// ReturnStackSize sets the return stack capacity, in cells.
func ReturnStackSize(n int) Option {
	return func(e *Engine) error {
		if n <= 0 {
			return errors.Errorf("return stack size must be positive, got %d", n)
		}
		e.rstack = make([]Cell, 0, n)
		return nil
	}
}

// Output sets the writer that EMIT, CR, SPACE and TYPE write through.
func Output(w io.Writer) Option {
	return func(e *Engine) error {
		e.out = newErrWriter(w)
		return nil
	}
}

// Engine is one Forth task: its memory, stacks, dictionary and input
// registers. It is not safe for concurrent use; see package host for a
// cooperative wrapper suitable for driving one Engine from multiple
// goroutines one line at a time.
type Engine struct {
	ram []byte

	data   []Cell
	rstack []Cell

	loopC, loopL Cell
	leaves       [][]int

	dict *Dictionary

	out *errWriter

	// lineSource is the default line reader installed by the Input option;
	// accept is what REFILL and ACCEPT call to fetch the next line.
	lineSource *bufio.Scanner
	accept     AcceptFunc

	insCount int64

	// defining holds compiler state for the colon definition currently
	// under construction; nil outside compilation.
	defining *definer

	// lastDefined is the most recently completed named entry, the target
	// of IMMEDIATE. lastCreated is the most recently CREATEd entry, the
	// target DOES> rewrites. CREATE sets both; colon definitions and
	// CONSTANT set only lastDefined, so the two differ after such a
	// definition follows a CREATE.
	lastDefined *entry
	lastCreated *entry
}

// definer tracks the in-progress compilation of one colon definition
// (including :NONAME and CREATE...DOES> bodies).
type definer struct {
	entry  *entry
	code   []op
	finish definerFinish
}

// New creates a ready-to-use Engine: empty stacks, empty user memory beyond
// the fixed input-state cells, BASE 10, STATE 0, and the full primitive
// word set registered.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		ram:  make([]byte, addrHereInit, addrHereInit+4096),
		dict: newDictionary(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, errors.Wrap(err, "forth.New")
		}
	}
	if e.data == nil {
		e.data = make([]Cell, 0, defaultDataStack)
	}
	if e.rstack == nil {
		e.rstack = make([]Cell, 0, defaultReturnStack)
	}
	if e.out == nil {
		e.out = newErrWriter(io.Discard)
	}
	e.storeCell(addrBase, 10)
	e.storeCell(addrState, 0)
	registerPrimitives(e)
	return e, nil
}

// InstructionCount returns the number of inner-interpreter steps executed
// so far, for diagnostics/benchmarking.
func (e *Engine) InstructionCount() int64 { return e.insCount }

// Depth returns the data stack depth.
func (e *Engine) Depth() int { return len(e.data) }

// RDepth returns the return stack depth.
func (e *Engine) RDepth() int { return len(e.rstack) }

// Data returns the data stack, top of stack last. The returned slice
// aliases the engine's internal storage and is only valid until the next
// mutating call.
func (e *Engine) Data() []Cell { return e.data }

// Return returns the return stack, top of stack last, aliasing internal
// storage the same way Data does.
func (e *Engine) Return() []Cell { return e.rstack }

// State reports whether the engine is currently compiling (STATE != 0).
func (e *Engine) State() bool { return e.fetchCell(addrState) != 0 }

// Base returns the current numeric radix.
func (e *Engine) Base() int { return int(e.fetchCell(addrBase)) }

// Here returns the current dictionary/memory high-water mark.
func (e *Engine) Here() Cell { return Cell(len(e.ram)) }

// sleepMillis implements MS's cooperative sleep: since package host never
// runs more than one goroutine against a given Engine at a time, a plain
// blocking sleep here only ever blocks that one submitted line, exactly
// the "cooperative" yield the source kernel's MS describes.
func (e *Engine) sleepMillis(ms int) {
	if ms <= 0 {
		return
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
