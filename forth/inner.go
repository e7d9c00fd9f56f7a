package forth

// execEntry runs one executable entry to completion: a primitive call, or
// the inner interpreter over a compiled code array. Each nested call
// recurses through execEntry/runCode, so re-entrancy depth is bounded only
// by the host (Go) call stack, exactly as the source kernel's inner()
// relies on Python's call stack for the same purpose.
func (e *Engine) execEntry(ent *entry) {
	if ent.prim != nil {
		ent.prim(e)
		return
	}
	e.runCode(ent.code)
}

// runCode is the inner interpreter: it walks one compiled sequence with a
// private instruction pointer, dispatching each tagged op. opExit returns
// immediately, unwinding only this invocation's loop; THROW unwinds
// further via panic/recover, handled in catch.go.
func (e *Engine) runCode(code []op) {
	ip := 0
	for ip < len(code) {
		o := &code[ip]
		e.insCount++
		switch o.kind {
		case opCall:
			e.execEntry(o.target)
			ip++
		case opPrimitive:
			o.prim(e)
			ip++
		case opLiteral:
			e.push(o.value)
			ip++
		case opBranch:
			ip = int(o.value)
		case opZBranch:
			if e.pop() == False {
				ip = int(o.value)
			} else {
				ip++
			}
		case opDoDo:
			e.rpush(e.loopC)
			e.rpush(e.loopL)
			e.loopC = e.pop()
			e.loopL = e.pop()
			ip++
		case opQDoDo:
			e.rpush(e.loopC)
			e.rpush(e.loopL)
			e.loopC = e.top()
			e.loopL = e.data[len(e.data)-2]
			rhs := e.pop()
			lhs := e.pop()
			e.push(lhs ^ rhs)
			ip++
		case opDoLoop:
			before := (e.loopC - e.loopL) < 0
			inc := e.pop()
			e.loopC += inc
			after := (e.loopC - e.loopL) < 0
			var finish bool
			if inc > 0 {
				finish = before && !after
			} else {
				finish = !before && after
			}
			e.push(flag(finish))
			ip++
		case opUnloop:
			e.loopL = e.rpop()
			e.loopC = e.rpop()
			ip++
		case opExit:
			return
		default:
			throwf(ThrowInvalidMemory)
		}
	}
}
