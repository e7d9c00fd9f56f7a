package forth

import "strings"

// opKind tags a single compiled instruction in a definition's code array.
// This is the tagged-variant replacement for the closures-over-partials
// technique used by the Python original: forward branches are patched by
// assigning an integer target into a branch record instead of rebinding a
// partially applied function.
type opKind int

const (
	opCall opKind = iota
	opPrimitive
	opLiteral
	opBranch
	opZBranch
	opDoDo
	opQDoDo
	opDoLoop
	opUnloop
	opExit
)

// primFunc is a host-implemented primitive operation.
type primFunc func(eng *Engine)

// op is one compiled instruction.
type op struct {
	kind   opKind
	target *entry   // opCall
	prim   primFunc // opPrimitive
	value  Cell     // opLiteral value, opBranch/opZBranch target index
}

// entry is a dictionary executable entry: either a primitive, a compiled
// definition (colon word, :NONAME body, CREATE header, or a DOES> action
// sequence), or a literal pusher compiled as a single-instruction code
// sequence ({opLiteral}). Immediate marks it as executed rather than
// compiled when encountered in compile state.
type entry struct {
	name      string
	immediate bool
	prim      primFunc // non-nil for a host-implemented primitive
	code      []op     // used when prim == nil: colon body, :NONAME body,
	// a CREATE header ({opLiteral}) or a DOES> action sequence
	xt Cell
}

// Dictionary is the name -> entry mapping plus the execution-token table.
// Insertions are also appended to a revision log so MARKER can roll the
// dictionary back to an earlier point without a deep copy, per the design
// note on dictionary snapshots.
type Dictionary struct {
	names map[string]*entry
	log   []logRecord
	xts   []*entry
	xtOf  map[*entry]Cell
}

type logRecord struct {
	name  string
	prior *entry // nil if name was previously undefined
}

const xtBase = 1000

func newDictionary() *Dictionary {
	return &Dictionary{
		names: make(map[string]*entry),
		xtOf:  make(map[*entry]Cell),
	}
}

// canonical upper-cases a name the way the dictionary always does for
// lookup and storage; dictionary names are case-insensitive.
func canonical(name string) string {
	return strings.ToUpper(name)
}

// define inserts or replaces a dictionary entry, logging the previous
// binding (if any) so MARKER can undo it later. Redefinition is legal and
// raises no error. No warning is printed for it, here or by any caller.
func (d *Dictionary) define(e *entry) {
	name := canonical(e.name)
	prior := d.names[name]
	d.log = append(d.log, logRecord{name: name, prior: prior})
	d.names[name] = e
}

// lookup resolves a canonical or raw name to its entry, or nil if undefined.
func (d *Dictionary) lookup(name string) *entry {
	return d.names[canonical(name)]
}

// revision returns the current length of the insertion log, used as a
// MARKER checkpoint together with HERE.
func (d *Dictionary) revision() int {
	return len(d.log)
}

// restore undoes every insertion recorded after the given revision.
func (d *Dictionary) restore(rev int) {
	for i := len(d.log) - 1; i >= rev; i-- {
		r := d.log[i]
		if r.prior == nil {
			delete(d.names, r.name)
		} else {
			d.names[r.name] = r.prior
		}
	}
	d.log = d.log[:rev]
}

// xtFor returns the execution token for e, assigning a fresh one on first
// use. Tokens are never reused and xtFor is idempotent for a given entry,
// matching the xt(c) helper in the source kernel.
func (d *Dictionary) xtFor(e *entry) Cell {
	if xt, ok := d.xtOf[e]; ok {
		return xt
	}
	d.xts = append(d.xts, e)
	xt := Cell(xtBase + len(d.xts) - 1)
	d.xtOf[e] = xt
	return xt
}

// entryForXT resolves an execution token back to its entry, or nil if the
// token is out of range.
func (d *Dictionary) entryForXT(xt Cell) *entry {
	idx := int(xt) - xtBase
	if idx < 0 || idx >= len(d.xts) {
		return nil
	}
	return d.xts[idx]
}

// words returns every currently bound dictionary name, for the WORDS
// primitive, most recently defined first. It walks the insertion log, so
// a redefined name is listed once, at its latest definition, and a MARKER
// rollback (which truncates the log) is reflected in the order too.
func (d *Dictionary) words() []string {
	out := make([]string, 0, len(d.names))
	seen := make(map[string]bool, len(d.names))
	for i := len(d.log) - 1; i >= 0; i-- {
		n := d.log[i].name
		if seen[n] || d.names[n] == nil {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
