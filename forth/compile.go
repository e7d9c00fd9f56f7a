package forth

// definer tracks the colon definition currently under construction. See
// engine.go for the struct's fields; finish is called when the definer's
// code is complete (at ';') and decides what becomes of it: register it in
// the dictionary under its name (ordinary colon words, CREATE headers), or
// just hand the finished entry back to the caller (:NONAME, a DOES> action
// body).
type definerFinish func(e *Engine, ent *entry)

func finishNamed(e *Engine, ent *entry) {
	if ent.name == "" {
		return
	}
	e.dict.define(ent)
	e.lastDefined = ent
}

// beginDefinition opens compilation of a new definition named name (name
// may be "" for a headerless body such as :NONAME or a DOES> action).
// RECURSE needs to reference the entry before it is complete, so the
// *entry is allocated up front and its code is filled in at finish time.
func (e *Engine) beginDefinition(name string, finish definerFinish) {
	ent := &entry{name: name}
	e.defining = &definer{entry: ent, finish: finish}
	e.storeCell(addrState, 1)
}

// compileOp appends one instruction to the definition currently under
// construction.
func (e *Engine) compileOp(o op) {
	d := e.defining
	d.code = append(d.code, o)
}

// endDefinition finalizes the current definition: its code becomes the
// accumulated op sequence, finish decides where it goes, and STATE returns
// to interpret.
func (e *Engine) endDefinition() {
	d := e.defining
	d.entry.code = d.code
	e.defining = nil
	e.storeCell(addrState, 0)
	d.finish(e, d.entry)
}

// compileCall appends a call to ent. Primitives are compiled as plain
// calls too, never inlined; dispatch cost is the same as the source
// kernel's own partial-application calls.
func (e *Engine) compileCall(ent *entry) {
	e.compileOp(op{kind: opCall, target: ent})
}

// compileLiteral appends a literal pusher for v.
func (e *Engine) compileLiteral(v Cell) {
	e.compileOp(op{kind: opLiteral, value: v})
}

// --- dictionary-mutating primitives -----------------------------------

// wordColon implements ":": parse a name, open a definition under that
// name, switch to compile state.
func wordColon(e *Engine) {
	name := e.parseName()
	if name == "" {
		throwf(ThrowUndefinedWord)
	}
	e.beginDefinition(name, finishNamed)
}

// wordSemicolon implements the immediate ";": close the current
// definition.
func wordSemicolon(e *Engine) {
	if e.defining == nil {
		throwf(ThrowCompileOnlyWord)
	}
	e.endDefinition()
}

// wordNoname implements ":NONAME": open a headerless definition; at ';'
// its xt is pushed instead of being bound to a name.
func wordNoname(e *Engine) {
	e.beginDefinition("", func(e *Engine, ent *entry) {
		e.push(e.dict.xtFor(ent))
	})
}

// wordRecurse implements the immediate "RECURSE": compile a call to the
// definition currently under construction.
func wordRecurse(e *Engine) {
	if e.defining == nil {
		throwf(ThrowCompileOnlyWord)
	}
	e.compileCall(e.defining.entry)
}

// wordImmediate marks the most recently defined word as immediate.
func wordImmediate(e *Engine) {
	if e.lastDefined == nil {
		throwf(ThrowUndefinedWord)
	}
	e.lastDefined.immediate = true
}

// wordLiteral implements "LITERAL": pop a cell and compile it as a
// literal pusher in the current definition.
func wordLiteral(e *Engine) {
	if e.defining == nil {
		throwf(ThrowCompileOnlyWord)
	}
	e.compileLiteral(e.pop())
}

// wordCompileComma implements "COMPILE,": append the entry identified by
// the xt on top of stack to the current definition.
func wordCompileComma(e *Engine) {
	if e.defining == nil {
		throwf(ThrowCompileOnlyWord)
	}
	xt := e.pop()
	ent := e.dict.entryForXT(xt)
	if ent == nil {
		throwf(ThrowInvalidMemory)
	}
	e.compileCall(ent)
}

// wordPostpone implements the immediate "POSTPONE": lay down compilation
// behavior for the following word regardless of its own immediacy. For an
// immediate word, appearing here is exactly like the word appearing
// unquoted, so it compiles a direct call, identical to what would have
// happened had the word simply appeared in this spot (running it now would
// execute it against the *enclosing* definition's half-built code, which is
// not what POSTPONE means). For a non-immediate word it compiles code that
// pushes its xt and calls COMPILE, so that, when the enclosing definition
// later runs, that run is what compiles the call to the postponed word.
func wordPostpone(e *Engine) {
	if e.defining == nil {
		throwf(ThrowCompileOnlyWord)
	}
	name := e.parseName()
	ent := e.dict.lookup(name)
	if ent == nil {
		throwf(ThrowUndefinedWord)
	}
	if ent.immediate {
		e.compileCall(ent)
		return
	}
	e.compileLiteral(e.dict.xtFor(ent))
	compileCommaEnt := e.dict.lookup("COMPILE,")
	e.compileCall(compileCommaEnt)
}

// wordCreate implements "CREATE": parse a name from the current input and
// bind it to a new entry whose sole behavior (until DOES> rewrites it) is
// to push its data-field address, namely HERE at the time of creation.
func wordCreate(e *Engine) {
	name := e.parseName()
	if name == "" {
		throwf(ThrowUndefinedWord)
	}
	ent := &entry{
		name: name,
		code: []op{{kind: opLiteral, value: e.Here()}},
	}
	e.dict.define(ent)
	e.lastDefined = ent
	e.lastCreated = ent
}

// wordDoes implements the immediate "DOES>": ends the header word's
// compiled sequence right here (so the defining word, e.g. a word like
// CONST defined as ": CONST CREATE , DOES> @ ;", finalizes immediately),
// compiles a splice primitive that will run when the defining word
// executes at CREATE-time, and then re-opens compilation into a fresh
// headerless action entry for the remaining source text up to the closing
// ';'. The splice truncates the most recently CREATEd word's code to just
// its header literal and appends a call into the action entry: two linked
// compiled sequences spliced together at CREATE-time.
func wordDoes(e *Engine) {
	if e.defining == nil {
		throwf(ThrowCompileOnlyWord)
	}
	action := &entry{}
	e.compileOp(op{kind: opPrimitive, prim: func(e2 *Engine) {
		target := e2.lastCreated
		if target == nil {
			throwf(ThrowInvalidMemory)
		}
		if len(target.code) > 1 {
			target.code = target.code[:1]
		}
		target.code = append(target.code, op{kind: opCall, target: action})
	}})
	e.endDefinition()
	e.defining = &definer{entry: action, finish: func(e *Engine, ent *entry) {}}
	e.storeCell(addrState, 1)
}

// wordToBody implements ">BODY": for a word created by CREATE (optionally
// rewritten by DOES>), returns the data-field address carried by its
// header literal.
func wordToBody(e *Engine) {
	xt := e.pop()
	ent := e.dict.entryForXT(xt)
	if ent == nil || len(ent.code) == 0 || ent.code[0].kind != opLiteral {
		throwf(ThrowInvalidMemory)
	}
	e.push(ent.code[0].value)
}

// wordMarker implements "MARKER": parse a name and bind it to a checkpoint
// that restores HERE and the dictionary when later invoked.
func wordMarker(e *Engine) {
	name := e.parseName()
	if name == "" {
		throwf(ThrowUndefinedWord)
	}
	m := e.makeMarker()
	ent := &entry{
		name: name,
		prim: func(e2 *Engine) { e2.restoreMarker(m) },
	}
	e.dict.define(ent)
}

// wordVariable implements "VARIABLE": CREATE a word reserving one cell,
// initialized to zero.
func wordVariable(e *Engine) {
	wordCreate(e)
	e.comma(0)
}

// wordConstant implements "CONSTANT": define a word that always pushes the
// value on top of stack. It builds the entry directly as a
// single-instruction literal pusher, the same shape as a CREATE header,
// without going through CREATE or the DOES> splice.
func wordConstant(e *Engine) {
	v := e.pop()
	name := e.parseName()
	if name == "" {
		throwf(ThrowUndefinedWord)
	}
	ent := &entry{
		name: name,
		code: []op{{kind: opLiteral, value: v}},
	}
	e.dict.define(ent)
	e.lastDefined = ent
}
