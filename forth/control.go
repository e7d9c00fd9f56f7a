package forth

// Control-flow and loop constructs. All are immediate and compile-only:
// they manipulate the definer's code array directly and use the data
// stack itself to carry compile-time location marks, exactly as the
// source kernel does (BEGIN/IF/DO push the current code length onto the
// very stack words on it later pop from). leaves tracks, per nested
// DO-frame, the indices of pending forward branches from LEAVE and from
// ?DO's own skip-if-empty branch, resolved when the frame's LOOP/+LOOP
// closes it.

func requireCompiling(e *Engine) {
	if e.defining == nil {
		throwf(ThrowCompileOnlyWord)
	}
}

func herePos(e *Engine) Cell { return Cell(len(e.defining.code)) }

func wordBegin(e *Engine) {
	requireCompiling(e)
	e.push(herePos(e))
}

func wordAgain(e *Engine) {
	requireCompiling(e)
	target := e.pop()
	e.compileOp(op{kind: opBranch, value: target})
}

func wordAhead(e *Engine) {
	requireCompiling(e)
	e.push(herePos(e))
	e.compileOp(op{kind: opBranch})
}

func wordIf(e *Engine) {
	requireCompiling(e)
	e.push(herePos(e))
	e.compileOp(op{kind: opZBranch})
}

func wordThen(e *Engine) {
	requireCompiling(e)
	idx := int(e.pop())
	if idx < 0 || idx >= len(e.defining.code) {
		throwf(ThrowInvalidMemory)
	}
	e.defining.code[idx].value = herePos(e)
}

func wordElse(e *Engine) {
	requireCompiling(e)
	wordAhead(e)
	// stack: [if-idx, ahead-idx] -> resolve if-idx to here, leaving
	// ahead-idx for the following THEN.
	aheadIdx := e.pop()
	ifIdx := e.pop()
	e.defining.code[ifIdx].value = herePos(e)
	e.push(aheadIdx)
}

func wordUntil(e *Engine) {
	requireCompiling(e)
	target := e.pop()
	e.compileOp(op{kind: opZBranch, value: target})
}

func wordDo(e *Engine) {
	requireCompiling(e)
	e.leaves = append(e.leaves, nil)
	e.compileOp(op{kind: opDoDo})
	e.push(herePos(e))
}

func wordQuestionDo(e *Engine) {
	requireCompiling(e)
	e.compileOp(op{kind: opQDoDo})
	e.leaves = append(e.leaves, []int{len(e.defining.code)})
	e.compileOp(op{kind: opZBranch})
	e.push(herePos(e))
}

// closeLoop compiles the shared LOOP/+LOOP tail: the loop-increment
// primitive, a conditional back-branch to the loop start, then patches
// every pending LEAVE (and ?DO's own skip branch) in this frame to land
// just past the loop, and appends UNLOOP.
func (e *Engine) closeLoop() {
	target := e.pop()
	e.compileOp(op{kind: opDoLoop})
	e.compileOp(op{kind: opZBranch, value: target})
	leaves := e.leaves[len(e.leaves)-1]
	e.leaves = e.leaves[:len(e.leaves)-1]
	here := herePos(e)
	for _, idx := range leaves {
		e.defining.code[idx].value = here
	}
	e.compileOp(op{kind: opUnloop})
}

func wordLoop(e *Engine) {
	requireCompiling(e)
	e.compileLiteral(1)
	e.closeLoop()
}

func wordPlusLoop(e *Engine) {
	requireCompiling(e)
	e.closeLoop()
}

func wordLeave(e *Engine) {
	requireCompiling(e)
	if len(e.leaves) == 0 {
		throwf(ThrowCompileOnlyWord)
	}
	idx := len(e.defining.code)
	e.leaves[len(e.leaves)-1] = append(e.leaves[len(e.leaves)-1], idx)
	e.compileOp(op{kind: opBranch})
}

func wordI(e *Engine) { e.push(e.loopC) }

func wordJ(e *Engine) {
	if len(e.rstack) < 2 {
		throwf(ThrowStackUnderflow)
	}
	e.push(e.rstack[len(e.rstack)-2])
}

func wordUnloop(e *Engine) {
	e.loopL = e.rpop()
	e.loopC = e.rpop()
}

// wordExit implements "EXIT": compile an opExit directly into the
// definition under construction. It must be immediate rather than an
// ordinary compiled call: opExit has to terminate the *enclosing*
// definition's runCode loop, and a plain compileCall into a separate entry
// would only return from that entry's own nested runCode frame.
func wordExit(e *Engine) {
	requireCompiling(e)
	e.compileOp(op{kind: opExit})
}
