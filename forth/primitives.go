package forth

import "fmt"

// registerPrimitives binds the full primitive word set (C4) plus the
// compiler (C5), control-flow (C7), outer interpreter (C8) and exception
// (C9) words defined in compile.go, control.go, catch.go and outer.go. It
// runs once per New.
func registerPrimitives(e *Engine) {
	d := func(name string, fn primFunc) { e.dict.define(&entry{name: name, prim: fn}) }
	imm := func(name string, fn primFunc) {
		e.dict.define(&entry{name: name, prim: fn, immediate: true})
	}

	// --- stack manipulation ---
	d("DUP", func(e *Engine) { e.push(e.top()) })
	d("DROP", func(e *Engine) { e.pop() })
	d("SWAP", func(e *Engine) {
		b, a := e.pop(), e.pop()
		e.push(b)
		e.push(a)
	})
	d("OVER", func(e *Engine) {
		n := len(e.data)
		if n < 2 {
			throwf(ThrowStackUnderflow)
		}
		e.push(e.data[n-2])
	})
	d("NIP", func(e *Engine) {
		top := e.pop()
		e.pop()
		e.push(top)
	})
	d("TUCK", func(e *Engine) {
		b, a := e.pop(), e.pop()
		e.push(b)
		e.push(a)
		e.push(b)
	})
	d("ROT", func(e *Engine) {
		c, b, a := e.pop(), e.pop(), e.pop()
		e.push(b)
		e.push(c)
		e.push(a)
	})
	d("2DUP", func(e *Engine) {
		n := len(e.data)
		if n < 2 {
			throwf(ThrowStackUnderflow)
		}
		e.push(e.data[n-2])
		e.push(e.data[n-1])
	})
	d("2DROP", func(e *Engine) {
		e.pop()
		e.pop()
	})
	d("2SWAP", func(e *Engine) {
		n := len(e.data)
		if n < 4 {
			throwf(ThrowStackUnderflow)
		}
		e.data[n-4], e.data[n-2] = e.data[n-2], e.data[n-4]
		e.data[n-3], e.data[n-1] = e.data[n-1], e.data[n-3]
	})
	d("2OVER", func(e *Engine) {
		n := len(e.data)
		if n < 4 {
			throwf(ThrowStackUnderflow)
		}
		e.push(e.data[n-4])
		e.push(e.data[n-3])
	})
	d(">R", func(e *Engine) { e.rpush(e.pop()) })
	d("R>", func(e *Engine) { e.push(e.rpop()) })
	d("R@", func(e *Engine) {
		n := len(e.rstack)
		if n == 0 {
			throwf(ThrowStackUnderflow)
		}
		e.push(e.rstack[n-1])
	})
	d("N>R", func(e *Engine) {
		n := e.pop()
		if int(n) < 0 || int(n) > len(e.data) {
			throwf(ThrowStackUnderflow)
		}
		for i := Cell(0); i < n; i++ {
			e.rpush(e.pop())
		}
		e.rpush(n)
	})
	d("NR>", func(e *Engine) {
		n := e.rpop()
		for i := Cell(0); i < n; i++ {
			e.push(e.rpop())
		}
		e.push(n)
	})

	// --- arithmetic / logic ---
	d("+", func(e *Engine) { b, a := e.pop(), e.pop(); e.push(a + b) })
	d("-", func(e *Engine) { b, a := e.pop(), e.pop(); e.push(a - b) })
	d("*", func(e *Engine) { b, a := e.pop(), e.pop(); e.push(a * b) })
	d("/", func(e *Engine) {
		b, a := e.pop(), e.pop()
		if b == 0 {
			throwf(ThrowDivideByZero)
		}
		e.push(a / b)
	})
	d("MOD", func(e *Engine) {
		b, a := e.pop(), e.pop()
		if b == 0 {
			throwf(ThrowDivideByZero)
		}
		e.push(a % b)
	})
	d("/MOD", func(e *Engine) {
		b, a := e.pop(), e.pop()
		if b == 0 {
			throwf(ThrowDivideByZero)
		}
		e.push(a % b)
		e.push(a / b)
	})
	d("AND", func(e *Engine) { b, a := e.pop(), e.pop(); e.push(a & b) })
	d("OR", func(e *Engine) { b, a := e.pop(), e.pop(); e.push(a | b) })
	d("XOR", func(e *Engine) { b, a := e.pop(), e.pop(); e.push(a ^ b) })
	d("LSHIFT", func(e *Engine) {
		n, a := e.pop(), e.pop()
		e.push(Cell(uint32(a) << uint(n)))
	})
	d("RSHIFT", func(e *Engine) {
		n, a := e.pop(), e.pop()
		e.push(Cell(uint32(a) >> uint(n)))
	})
	d("2/", func(e *Engine) { e.push(e.pop() >> 1) })
	d("2*", func(e *Engine) { e.push(e.pop() << 1) })
	d("1+", func(e *Engine) { e.push(e.pop() + 1) })
	d("1-", func(e *Engine) { e.push(e.pop() - 1) })
	d("=", func(e *Engine) { b, a := e.pop(), e.pop(); e.push(flag(a == b)) })
	d("<>", func(e *Engine) { b, a := e.pop(), e.pop(); e.push(flag(a != b)) })
	d("<", func(e *Engine) { b, a := e.pop(), e.pop(); e.push(flag(a < b)) })
	d(">", func(e *Engine) { b, a := e.pop(), e.pop(); e.push(flag(a > b)) })
	d("U<", func(e *Engine) {
		b, a := e.pop(), e.pop()
		e.push(flag(UCell(a) < UCell(b)))
	})
	d("0=", func(e *Engine) { e.push(flag(e.pop() == 0)) })
	d("0<", func(e *Engine) { e.push(flag(e.pop() < 0)) })
	d("NEGATE", func(e *Engine) { e.push(-e.pop()) })
	d("INVERT", func(e *Engine) { e.push(^e.pop()) })
	d("ABS", func(e *Engine) {
		v := e.pop()
		if v < 0 {
			v = -v
		}
		e.push(v)
	})
	d("MIN", func(e *Engine) {
		b, a := e.pop(), e.pop()
		if a < b {
			e.push(a)
		} else {
			e.push(b)
		}
	})
	d("MAX", func(e *Engine) {
		b, a := e.pop(), e.pop()
		if a > b {
			e.push(a)
		} else {
			e.push(b)
		}
	})
	d("WITHIN", func(e *Engine) {
		hi, lo, x := e.pop(), e.pop(), e.pop()
		e.push(flag(UCell(x-lo) < UCell(hi-lo)))
	})

	// --- double-cell ---
	d("D+", func(e *Engine) {
		bhi, blo := e.pop(), e.pop()
		ahi, alo := e.pop(), e.pop()
		sum := dpack(alo, ahi) + dpack(blo, bhi)
		lo, hi := dunpack(sum)
		e.push(lo)
		e.push(hi)
	})
	d("UM*", func(e *Engine) {
		b, a := e.pop(), e.pop()
		prod := uint64(uint32(a)) * uint64(uint32(b))
		lo, hi := udunpack(prod)
		e.push(lo)
		e.push(hi)
	})
	d("UM/MOD", func(e *Engine) {
		divisor := e.pop()
		hi, lo := e.pop(), e.pop()
		if divisor == 0 {
			throwf(ThrowDivideByZero)
		}
		dividend := udpack(lo, hi)
		div := uint64(uint32(divisor))
		e.push(Cell(uint32(dividend % div)))
		e.push(Cell(uint32(dividend / div)))
	})

	// --- memory ---
	d("@", func(e *Engine) { e.push(e.fetchCell(e.pop())) })
	d("!", func(e *Engine) { addr, v := e.pop(), e.pop(); e.storeCell(addr, v) })
	d("C@", func(e *Engine) { e.push(e.fetchByte(e.pop())) })
	d("C!", func(e *Engine) { addr, v := e.pop(), e.pop(); e.storeByte(addr, v) })
	d("+!", func(e *Engine) {
		addr, n := e.pop(), e.pop()
		e.storeCell(addr, e.fetchCell(addr)+n)
	})
	d(",", func(e *Engine) { e.comma(e.pop()) })
	d("C,", func(e *Engine) { e.cComma(e.pop()) })
	d("ALLOT", func(e *Engine) { e.allot(int(e.pop())) })
	d("HERE", func(e *Engine) { e.push(e.Here()) })
	d("CELLS", func(e *Engine) { e.push(e.pop() * 4) })
	d("CELL+", func(e *Engine) { e.push(e.pop() + 4) })
	d("CHARS", func(e *Engine) {})
	d("CHAR+", func(e *Engine) { e.push(e.pop() + 1) })

	// --- I/O ---
	d("EMIT", func(e *Engine) { e.emit(e.pop()) })
	d("CR", func(e *Engine) { e.writeString("\r\n") })
	d("SPACE", func(e *Engine) { e.emit(' ') })
	d("BL", func(e *Engine) { e.push(' ') })
	d("TYPE", func(e *Engine) {
		n, addr := e.pop(), e.pop()
		e.writeString(e.sliceString(addr, n))
	})
	d("COUNT", func(e *Engine) {
		addr := e.pop()
		n := e.fetchByte(addr)
		e.push(addr + 1)
		e.push(n)
	})
	d(".", func(e *Engine) {
		v := e.pop()
		e.writeString(fmt.Sprintf("%s ", formatCell(v, e.Base())))
	})
	d("DEPTH", func(e *Engine) { e.push(Cell(len(e.data))) })
	d("WORDS", func(e *Engine) {
		for _, w := range e.dict.words() {
			e.writeString(w)
			e.emit(' ')
		}
	})
	d("MS", func(e *Engine) { e.sleepMillis(int(e.pop())) })

	// --- exception / abort ---
	d("ABORT", func(e *Engine) { panic(throwPanic{code: Cell(ThrowAbort)}) })
	d(`ABORT"`, func(e *Engine) {
		_, _ = e.pop(), e.pop()
		panic(throwPanic{code: Cell(ThrowAbortMessage)})
	})
	d("CATCH", wordCatch)
	d("THROW", wordThrow)

	// --- compiler / control flow / outer interpreter ---
	d(":", wordColon)
	imm(";", wordSemicolon)
	d(":NONAME", wordNoname)
	imm("RECURSE", wordRecurse)
	imm("IMMEDIATE", wordImmediate)
	imm("LITERAL", wordLiteral)
	d("COMPILE,", wordCompileComma)
	imm("POSTPONE", wordPostpone)
	d("CREATE", wordCreate)
	imm("DOES>", wordDoes)
	d(">BODY", wordToBody)
	d("MARKER", wordMarker)
	d("VARIABLE", wordVariable)
	d("CONSTANT", wordConstant)

	imm("BEGIN", wordBegin)
	imm("AGAIN", wordAgain)
	imm("AHEAD", wordAhead)
	imm("IF", wordIf)
	imm("THEN", wordThen)
	imm("ELSE", wordElse)
	imm("UNTIL", wordUntil)
	imm("DO", wordDo)
	imm("?DO", wordQuestionDo)
	imm("LOOP", wordLoop)
	imm("+LOOP", wordPlusLoop)
	imm("LEAVE", wordLeave)
	d("I", wordI)
	d("J", wordJ)
	d("UNLOOP", wordUnloop)
	imm("EXIT", wordExit)

	d("REFILL", wordRefill)
	d("ACCEPT", wordAccept)
	d("PARSE", wordParse)
	d("PARSE-NAME", wordParseName)
	d("/STRING", wordSlashString)
	d("SOURCE", wordSource)
	d("EVALUATE", wordEvaluate)
	d("SFIND", wordSFind)
	d("'", wordTick)
	d("FIND", wordFind)
	d("EXECUTE", wordExecute)
}

// formatCell renders v in the given radix, signed for base 10 and unsigned
// otherwise (matching the source kernel's printing convention — negative
// numbers only make sense to display in decimal).
func formatCell(v Cell, base int) string {
	if base == 10 {
		return fmt.Sprintf("%d", int32(v))
	}
	return uintString(uint32(v), base)
}

func uintString(v uint32, base int) string {
	if v == 0 {
		return "0"
	}
	const digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	var buf [32]byte
	i := len(buf)
	b := uint32(base)
	for v > 0 {
		i--
		buf[i] = digits[v%b]
		v /= b
	}
	return string(buf[i:])
}
