package forth

import (
	"io"
	"strconv"
)

// dumpSlice writes prefix followed by the space-separated decimal cells of
// a, one tagged slice per call.
func dumpSlice(w io.Writer, prefix byte, a []Cell) error {
	if _, err := w.Write([]byte{prefix}); err != nil {
		return err
	}
	l := len(a) - 1
	if l < 0 {
		return nil
	}
	for i := 0; i < l; i++ {
		if _, err := io.WriteString(w, strconv.Itoa(int(a[i]))); err != nil {
			return err
		}
		if _, err := w.Write([]byte{' '}); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, strconv.Itoa(int(a[l])))
	return err
}

// Dump writes the data stack, return stack and a BASE/STATE/HERE summary to
// w as three tagged blocks: one \x1C-prefixed block for the data stack, one
// \x1D-prefixed block for the return stack, and a final \x1E-prefixed block
// for BASE, STATE and HERE. Used by integration tests and the CLI's -dump
// flag.
func (e *Engine) Dump(w io.Writer) error {
	if err := dumpSlice(w, '\x1C', e.data); err != nil {
		return err
	}
	if err := dumpSlice(w, '\x1D', e.rstack); err != nil {
		return err
	}
	return dumpSlice(w, '\x1E', []Cell{Cell(e.Base()), e.fetchCell(addrState), e.Here()})
}
