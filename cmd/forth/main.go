// Command forth is a line-oriented REPL front end for package forth,
// wiring a host.Runner between buffered stdin/stdout: flag.Var-based
// custom flags, an atExit error banner, and a final -dump of engine state
// for test fixtures.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/mpx/threadforth/forth"
	"github.com/mpx/threadforth/host"
)

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }

const (
	okBanner = "  ok\r\n"
)

func errorBanner(code forth.ThrowCode) string {
	return fmt.Sprintf("error: %d %s\n", int32(code), code.Error())
}

func atExit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	os.Exit(1)
}

// runFile feeds name's contents to r one line at a time, printing the same
// banners a REPL line would get.
func runFile(ctx context.Context, r *host.Runner, w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrapf(err, "opening %s", name)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if err := submitLine(ctx, r, w, sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

func submitLine(ctx context.Context, r *host.Runner, w io.Writer, line string) error {
	err := r.Submit(ctx, w, line)
	if err == nil {
		io.WriteString(w, okBanner)
		return nil
	}
	var code forth.ThrowCode
	if errors.As(err, &code) {
		io.WriteString(w, errorBanner(code))
		return nil
	}
	return err
}

func main() {
	var includes fileList
	flag.Var(&includes, "include", "evaluate `filename` before starting the interactive loop (can be specified multiple times)")
	dataSize := flag.Int("data-stack", 1024, "data stack capacity in cells")
	returnSize := flag.Int("return-stack", 1024, "return stack capacity in cells")
	queueDepth := flag.Int("queue", 1, "host runner job queue depth")
	dump := flag.Bool("dump", false, "dump engine state to stdout on exit")
	flag.Parse()

	ctx := context.Background()

	eng, err := forth.New(
		forth.DataStackSize(*dataSize),
		forth.ReturnStackSize(*returnSize),
		forth.Output(os.Stdout),
	)
	if err != nil {
		atExit(errors.Wrap(err, "constructing engine"))
	}

	r := host.New(ctx, eng, *queueDepth)
	defer r.Close()

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	for _, name := range includes {
		if err := runFile(ctx, r, stdout, name); err != nil {
			stdout.Flush()
			atExit(err)
		}
	}
	stdout.Flush()

	stdin := bufio.NewScanner(os.Stdin)
	for stdin.Scan() {
		line := stdin.Text()
		if strings.EqualFold(strings.TrimSpace(line), "bye") {
			break
		}
		if err := submitLine(ctx, r, stdout, line); err != nil {
			stdout.Flush()
			atExit(err)
		}
		stdout.Flush()
	}
	if err := stdin.Err(); err != nil {
		atExit(err)
	}

	if *dump {
		if err := eng.Dump(os.Stdout); err != nil {
			atExit(err)
		}
	}
}
