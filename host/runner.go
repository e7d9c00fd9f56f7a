// Package host drives one forth.Engine cooperatively: a single goroutine
// owns the engine and processes submitted command lines one at a time, so
// callers on other goroutines can Submit concurrently without any engine
// state ever crossing a goroutine boundary mid-word. A bounded job channel
// plus golang.org/x/sync/errgroup pairs the worker goroutine with a ready
// channel: a worker pulling (writer, line) jobs off a queue and signaling
// readiness once it's listening.
package host

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/mpx/threadforth/forth"
)

type job struct {
	w    io.Writer
	line string
	done chan forth.ThrowCode
}

// Runner owns an *forth.Engine and serializes access to it behind a
// bounded job queue. The zero value is not usable; construct with New.
type Runner struct {
	eng  *forth.Engine
	jobs chan job
	eg   *errgroup.Group
	ctx  context.Context
}

// New starts a Runner driving eng. The returned Runner's worker goroutine
// is supervised by ctx: canceling ctx stops accepting new jobs and causes
// Close to return ctx.Err().
func New(ctx context.Context, eng *forth.Engine, queueDepth int) *Runner {
	eg, egCtx := errgroup.WithContext(ctx)
	r := &Runner{
		eng:  eng,
		jobs: make(chan job, queueDepth),
		eg:   eg,
		ctx:  egCtx,
	}
	ready := make(chan struct{})
	eg.Go(func() error { return r.loop(egCtx, ready) })
	<-ready
	return r
}

// loop is the only goroutine that ever touches r.eng.
func (r *Runner) loop(ctx context.Context, ready chan struct{}) error {
	close(ready)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j, ok := <-r.jobs:
			if !ok {
				return nil
			}
			r.eng.SetOutput(j.w)
			r.eng.SetLine(j.line)
			j.done <- forth.ThrowCode(r.eng.InterpretCatching())
		}
	}
}

// Submit enqueues one line of source to be interpreted against w and
// blocks until the engine has finished it, returning the resulting
// ThrowCode as an error (nil for a clean 0). It is safe to call Submit
// from multiple goroutines concurrently; the engine itself only ever sees
// one line at a time.
func (r *Runner) Submit(ctx context.Context, w io.Writer, line string) error {
	done := make(chan forth.ThrowCode, 1)
	select {
	case r.jobs <- job{w: w, line: line, done: done}:
	case <-ctx.Done():
		return ctx.Err()
	case <-r.ctx.Done():
		return r.ctx.Err()
	}
	select {
	case code := <-done:
		if code == 0 {
			return nil
		}
		return code
	case <-ctx.Done():
		return ctx.Err()
	case <-r.ctx.Done():
		return r.ctx.Err()
	}
}

// Close stops accepting new jobs and waits for the worker goroutine to
// drain and exit.
func (r *Runner) Close() error {
	close(r.jobs)
	return r.eg.Wait()
}
