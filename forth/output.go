package forth

import (
	"io"

	"github.com/mpx/threadforth/internal/errio"
)

// errWriter is this engine's handle on the configured output sink, a thin
// alias over errio.Writer. EMIT/CR/SPACE/TYPE check every write; the first
// failure throws at once, and since errio.Writer latches it, every later
// write on the same sink throws too.
type errWriter = errio.Writer

func newErrWriter(w io.Writer) *errWriter {
	return errio.New(w)
}

// emit writes a single character, translating any underlying I/O error
// into an invalid-memory-address throw: at the Forth level, a broken
// output sink has no better-fitting standard code.
func (e *Engine) emit(c Cell) {
	if err := e.out.WriteByte(byte(c)); err != nil {
		throwf(ThrowInvalidMemory)
	}
}

func (e *Engine) writeString(s string) {
	if _, err := e.out.WriteString(s); err != nil {
		throwf(ThrowInvalidMemory)
	}
}
