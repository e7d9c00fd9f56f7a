// Package forth implements a hosted Forth-83/ANS-style interpreter and
// threaded-code compiler.
//
// An Engine owns a flat byte memory ("ram"), a data stack, a return stack
// and a mutable dictionary of named words. The outer interpreter tokenizes
// one line at a time and, depending on STATE, either executes a word,
// compiles a call to it into the definition under construction, or parses
// it as a number. Colon definitions compile to a sequence of tagged
// entries (calls, literals, branches) executed by a small re-entrant inner
// interpreter.
//
// This package is the core engine only: it has no opinion on where input
// lines come from or where output goes beyond the io.Writer handed to it.
// Package host wires an Engine to a queue of (writer, line) jobs suitable
// for driving it from an interactive shell; cmd/forth is a minimal REPL
// built on top of that.
//
// WORDS lists the bound names in reverse insertion order (newest first),
// taken from the dictionary's insertion log, so MARKER rollbacks are
// reflected in it.
package forth
