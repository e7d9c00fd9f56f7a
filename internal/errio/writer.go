// Package errio provides a small io.Writer wrapper that latches the first
// write error it sees, so callers issuing many small writes in a row (one
// byte at a time, as EMIT does) need only check once at the end.
package errio

import (
	"io"

	"github.com/pkg/errors"
)

// Writer wraps an io.Writer and keeps returning the first error it
// encountered instead of attempting further writes.
type Writer struct {
	w   io.Writer
	Err error
}

// New returns a new Writer wrapping w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write implements io.Writer. Once Err is set, Write is a no-op that
// returns that error.
func (w *Writer) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// WriteByte writes a single byte, satisfying io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

// WriteString writes s, satisfying io.StringWriter.
func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}
