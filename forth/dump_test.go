package forth

import (
	"bytes"
	"strconv"
	"testing"
)

func TestDumpSliceFormatsSpaceSeparatedDecimal(t *testing.T) {
	var buf bytes.Buffer
	if err := dumpSlice(&buf, '\x1C', []Cell{1, 2, 3}); err != nil {
		t.Fatalf("dumpSlice: %v", err)
	}
	want := "\x1C1 2 3"
	if got := buf.String(); got != want {
		t.Fatalf("dumpSlice = %q, want %q", got, want)
	}
}

func TestDumpSliceEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := dumpSlice(&buf, '\x1D', nil); err != nil {
		t.Fatalf("dumpSlice: %v", err)
	}
	if got := buf.String(); got != "\x1D" {
		t.Fatalf("dumpSlice(empty) = %q, want bare prefix", got)
	}
}

func TestDumpSliceNegativeCells(t *testing.T) {
	var buf bytes.Buffer
	if err := dumpSlice(&buf, '\x1C', []Cell{-1, 5}); err != nil {
		t.Fatalf("dumpSlice: %v", err)
	}
	want := "\x1C-1 5"
	if got := buf.String(); got != want {
		t.Fatalf("dumpSlice = %q, want %q", got, want)
	}
}

func TestEngineDumpProducesThreeTaggedBlocks(t *testing.T) {
	e := newTestEngine(t)
	e.push(10)
	e.push(20)
	e.rpush(99)
	e.storeCell(addrBase, 16)
	e.storeCell(addrState, 1)

	var buf bytes.Buffer
	if err := e.Dump(&buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	want := "\x1C10 20" + "\x1D99" + "\x1E16 1 " + strconv.Itoa(int(e.Here()))
	if got := buf.String(); got != want {
		t.Fatalf("Dump() = %q, want %q", got, want)
	}
}
