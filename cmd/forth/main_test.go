package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mpx/threadforth/forth"
	"github.com/mpx/threadforth/host"
)

func newTestRunner(t *testing.T) (*host.Runner, context.Context) {
	t.Helper()
	eng, err := forth.New()
	if err != nil {
		t.Fatalf("forth.New: %v", err)
	}
	ctx := context.Background()
	r := host.New(ctx, eng, 1)
	t.Cleanup(func() { r.Close() })
	return r, ctx
}

func TestErrorBannerFormatsCodeAndMessage(t *testing.T) {
	got := errorBanner(forth.ThrowDivideByZero)
	want := "error: -10 division by zero\n"
	if got != want {
		t.Fatalf("errorBanner = %q, want %q", got, want)
	}
}

func TestSubmitLinePrintsOkBannerOnSuccess(t *testing.T) {
	r, ctx := newTestRunner(t)
	var buf bytes.Buffer
	if err := submitLine(ctx, r, &buf, "1 2 +"); err != nil {
		t.Fatalf("submitLine: %v", err)
	}
	if got := buf.String(); got != okBanner {
		t.Fatalf("output = %q, want %q", got, okBanner)
	}
}

func TestSubmitLinePrintsErrorBannerOnThrow(t *testing.T) {
	r, ctx := newTestRunner(t)
	var buf bytes.Buffer
	if err := submitLine(ctx, r, &buf, "DROP"); err != nil {
		t.Fatalf("submitLine returned an error instead of printing a banner: %v", err)
	}
	want := errorBanner(forth.ThrowStackUnderflow)
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunFileEvaluatesEachLine(t *testing.T) {
	r, ctx := newTestRunner(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "prelude.fs")
	if err := os.WriteFile(path, []byte(": SQ DUP * ;\n4 SQ .\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	var buf bytes.Buffer
	if err := runFile(ctx, r, &buf, path); err != nil {
		t.Fatalf("runFile: %v", err)
	}
	want := okBanner + "16 " + okBanner
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunFileMissingFileReturnsError(t *testing.T) {
	r, ctx := newTestRunner(t)
	var buf bytes.Buffer
	if err := runFile(ctx, r, &buf, filepath.Join(t.TempDir(), "nope.fs")); err == nil {
		t.Fatal("expected an error opening a missing file")
	}
}
