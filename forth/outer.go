package forth

import (
	"bufio"
	"io"
)

// AcceptFunc fills buf with the next line of input, returning how many
// bytes were copied and whether input is still open. ACCEPT is overridable
// so a host shell can swap it out to pull from a per-command queue instead
// of the default line reader.
type AcceptFunc func(e *Engine, buf []byte) (n int, ok bool)

// Input sets the engine's default line source, read by REFILL and ACCEPT.
// Package host does not use it: it installs each submitted line with
// SetLine.
func Input(r io.Reader) Option {
	return func(e *Engine) error {
		e.lineSource = bufio.NewScanner(r)
		e.accept = defaultAccept
		return nil
	}
}

func defaultAccept(e *Engine, buf []byte) (int, bool) {
	if e.lineSource == nil || !e.lineSource.Scan() {
		return 0, false
	}
	return copy(buf, e.lineSource.Text()), true
}

// SetAccept installs a custom AcceptFunc in place of the default line
// reader, for REFILL and ACCEPT.
func (e *Engine) SetAccept(fn AcceptFunc) { e.accept = fn }

// SetOutput redirects subsequent EMIT/CR/SPACE/TYPE output, used by
// package host to bind the writer for one submitted command.
func (e *Engine) SetOutput(w io.Writer) { e.out = newErrWriter(w) }

// SetLine installs line as the current input source directly, bypassing
// REFILL/ACCEPT. Used by package host, which already has the line in hand
// from its job queue.
func (e *Engine) SetLine(line string) {
	n := copy(e.ram[addrTIB:addrTIB+tibSize], line)
	e.storeCell(addrSourceA, addrTIB)
	e.storeCell(addrSourceC, Cell(n))
	e.storeCell(addrToIn, 0)
}

// Refill implements REFILL: pull one line via the current AcceptFunc into
// TIB and install it as the current input source. Returns false at EOF.
func (e *Engine) Refill() bool {
	if e.accept == nil {
		return false
	}
	n, ok := e.accept(e, e.ram[addrTIB:addrTIB+tibSize])
	if !ok {
		return false
	}
	e.storeCell(addrSourceA, addrTIB)
	e.storeCell(addrSourceC, Cell(n))
	e.storeCell(addrToIn, 0)
	return true
}

// sourceSlice returns the (address, remaining length) of input not yet
// consumed by >IN.
func (e *Engine) sourceSlice() (addr, n Cell) {
	addr = e.fetchCell(addrSourceA)
	total := e.fetchCell(addrSourceC)
	pos := e.fetchCell(addrToIn)
	if pos > total {
		pos = total
	}
	return addr + pos, total - pos
}

func (e *Engine) advanceToIn(n Cell) {
	e.storeCell(addrToIn, e.fetchCell(addrToIn)+n)
}

const spaceByte = Cell(' ')

// parseName implements PARSE-NAME: skip leading spaces, then consume up to
// the next space (or end of line), returning the token text. Returns "" at
// end of line.
func (e *Engine) parseName() string {
	addr, n := e.sourceSlice()
	i := Cell(0)
	for i < n && e.fetchByte(addr+i) == spaceByte {
		i++
	}
	e.advanceToIn(i)

	addr, n = e.sourceSlice()
	j := Cell(0)
	for j < n && e.fetchByte(addr+j) != spaceByte {
		j++
	}
	e.advanceToIn(j)
	return e.sliceString(addr, j)
}

// parseDelim implements PARSE: scan for delim from the current position,
// returning the content before it and advancing >IN past the delimiter (or
// to end of line if delim was not found).
func (e *Engine) parseDelim(delim byte) (addr, n Cell) {
	addr, avail := e.sourceSlice()
	i := Cell(0)
	for i < avail && e.fetchByte(addr+i) != Cell(delim) {
		i++
	}
	adv := i
	if i < avail {
		adv = i + 1
	}
	e.advanceToIn(adv)
	return addr, i
}

// digitValue returns the numeric value of a base-36 digit character and
// whether it is a valid digit at all (the caller still has to check it
// against the active base).
func digitValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, true
	default:
		return 0, false
	}
}

// numberToken converts a parsed token to a number per the base-prefix /
// sign / double-cell-suffix / char-literal rules. count is 1 for a single
// cell result (returned in lo) or 2 for a double (lo below hi). Raises -13
// on a body with trailing non-digit characters, matching the source
// kernel's da().
func (e *Engine) numberToken(tok string) (lo, hi Cell, count int) {
	if len(tok) == 3 && tok[0] == '\'' && tok[2] == '\'' {
		return Cell(tok[1]), 0, 1
	}

	base := e.Base()
	s := tok
	switch {
	case len(s) > 0 && s[0] == '$':
		base, s = 16, s[1:]
	case len(s) > 0 && s[0] == '#':
		base, s = 10, s[1:]
	case len(s) > 0 && s[0] == '%':
		base, s = 2, s[1:]
	}
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg, s = true, s[1:]
	}
	double := len(s) > 0 && s[len(s)-1] == '.'
	if double {
		s = s[:len(s)-1]
	}
	if s == "" {
		throwf(ThrowUndefinedWord)
	}
	var acc uint64
	for i := 0; i < len(s); i++ {
		d, valid := digitValue(s[i])
		if !valid || d >= base {
			throwf(ThrowUndefinedWord)
		}
		acc = acc*uint64(base) + uint64(d)
	}
	if double {
		if neg {
			acc = -acc
		}
		lo, hi = udunpack(acc)
		return lo, hi, 2
	}
	v := Cell(uint32(acc))
	if neg {
		v = -v
	}
	return v, 0, 1
}

// findWord resolves a name to its entry and the SFIND-style disposition:
// 0 with a nil entry (not found), -1 (non-immediate) or 1 (immediate).
func (e *Engine) findWord(name string) (*entry, int) {
	ent := e.dict.lookup(name)
	if ent == nil {
		return nil, 0
	}
	if ent.immediate {
		return ent, 1
	}
	return ent, -1
}

// interpretLoop is the outer interpreter: repeatedly parse a name and
// dispatch it through the 2x3 STATE/found table, stopping at end of line.
func (e *Engine) interpretLoop() {
	for {
		name := e.parseName()
		if name == "" {
			return
		}
		ent, found := e.findWord(name)
		compiling := e.State()
		switch {
		case found == 1:
			e.execEntry(ent)
		case found == -1 && !compiling:
			e.execEntry(ent)
		case found == -1 && compiling:
			e.compileCall(ent)
		case found == 0 && !compiling:
			lo, hi, count := e.numberToken(name)
			e.push(lo)
			if count == 2 {
				e.push(hi)
			}
		default: // found == 0 && compiling
			lo, hi, count := e.numberToken(name)
			e.compileLiteral(lo)
			if count == 2 {
				e.compileLiteral(hi)
			}
		}
	}
}

// Interpret runs the outer interpreter once over whatever SOURCE currently
// points at, uncaught: a THROW propagates to the caller as a Go panic. Most
// callers want InterpretCatching instead.
func (e *Engine) Interpret() { e.interpretLoop() }

// InterpretCatching runs the outer interpreter wrapped in the same
// stack/input-state rollback CATCH performs, returning the throw code (0
// on success). This is what a host shell loop calls after each REFILL.
func (e *Engine) InterpretCatching() Cell {
	return e.catchFunc((*Engine).interpretLoop)
}

// --- primitives exposing the above to Forth source --------------------

func wordRefill(e *Engine) { e.push(flag(e.Refill())) }

func wordAccept(e *Engine) {
	n1 := e.pop()
	addr := e.pop()
	if n1 < 0 {
		throwf(ThrowInvalidMemory)
	}
	a := int(addr)
	if a < 0 || a+int(n1) > len(e.ram) {
		throwf(ThrowInvalidMemory)
	}
	got, ok := e.accept(e, e.ram[a:a+int(n1)])
	if !ok {
		got = 0
	}
	e.push(Cell(got))
}

func wordParse(e *Engine) {
	delim := e.pop()
	addr, n := e.parseDelim(byte(delim))
	e.push(addr)
	e.push(n)
}

func wordParseName(e *Engine) {
	s := e.parseName()
	addr := e.Here()
	for i := 0; i < len(s); i++ {
		e.cComma(Cell(s[i]))
	}
	e.push(addr)
	e.push(Cell(len(s)))
}

func wordSlashString(e *Engine) {
	n := e.pop()
	length := e.pop()
	addr := e.pop()
	e.push(addr + n)
	e.push(length - n)
}

func wordSource(e *Engine) {
	e.push(e.fetchCell(addrSourceA))
	e.push(e.fetchCell(addrSourceC))
}

func wordEvaluate(e *Engine) {
	u := e.pop()
	addr := e.pop()
	savedA := e.fetchCell(addrSourceA)
	savedC := e.fetchCell(addrSourceC)
	savedIn := e.fetchCell(addrToIn)
	e.storeCell(addrSourceA, addr)
	e.storeCell(addrSourceC, u)
	e.storeCell(addrToIn, 0)
	// Deliberately not deferred: a THROW from within the evaluated text
	// propagates without restoring SOURCEA/SOURCEC/>IN here. Restoration
	// on exception is CATCH's job; a caller that wants EVALUATE to be
	// exception-safe must wrap it in CATCH itself. See DESIGN.md.
	e.interpretLoop()
	e.storeCell(addrSourceA, savedA)
	e.storeCell(addrSourceC, savedC)
	e.storeCell(addrToIn, savedIn)
}

func wordSFind(e *Engine) {
	u := e.pop()
	addr := e.pop()
	name := e.sliceString(addr, u)
	ent, found := e.findWord(name)
	if found == 0 {
		e.push(addr)
		e.push(u)
		e.push(False)
		return
	}
	e.push(e.dict.xtFor(ent))
	e.push(Cell(found))
}

// wordFind implements the classic ANS "FIND": ( c-addr -- c-addr 0 | xt 1 |
// xt -1 ), operating on a counted string rather than SFIND's (addr, u)
// pair.
func wordFind(e *Engine) {
	caddr := e.pop()
	n := e.fetchByte(caddr)
	name := e.sliceString(caddr+1, n)
	ent, found := e.findWord(name)
	if found == 0 {
		e.push(caddr)
		e.push(False)
		return
	}
	e.push(e.dict.xtFor(ent))
	e.push(Cell(found))
}

func wordTick(e *Engine) {
	name := e.parseName()
	ent, found := e.findWord(name)
	if found == 0 {
		throwf(ThrowUndefinedWord)
	}
	e.push(e.dict.xtFor(ent))
}

func wordExecute(e *Engine) {
	xt := e.pop()
	ent := e.dict.entryForXT(xt)
	if ent == nil {
		throwf(ThrowInvalidMemory)
	}
	e.execEntry(ent)
}
