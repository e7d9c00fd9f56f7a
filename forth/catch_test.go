package forth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatchReturnsZeroOnSuccess(t *testing.T) {
	e := newTestEngine(t)
	ent := &entry{prim: func(e *Engine) { e.push(1) }}
	xt := e.dict.xtFor(ent)
	e.push(xt)
	catchEnt := e.dict.lookup("CATCH")
	require.NotNil(t, catchEnt)
	catchEnt.prim(e)
	assert.Equal(t, Cell(0), e.pop())
	assert.Equal(t, Cell(1), e.pop())
}

func TestCatchReturnsCodeAndRestoresDepth(t *testing.T) {
	e := newTestEngine(t)
	e.push(42) // something already on the stack before CATCH runs

	ent := &entry{prim: func(e *Engine) {
		e.push(1)
		e.push(2)
		throwf(ThrowDivideByZero)
	}}
	xt := e.dict.xtFor(ent)
	e.push(xt)

	catchEnt := e.dict.lookup("CATCH")
	catchEnt.prim(e)

	assert.Equal(t, Cell(ThrowDivideByZero), e.pop())
	assert.Equal(t, Cell(42), e.pop(), "stack below CATCH's own arguments must survive untouched")
	assert.Equal(t, 0, e.Depth())
}

func TestCatchRestoresReturnStackDepth(t *testing.T) {
	e := newTestEngine(t)
	e.rpush(7)

	ent := &entry{prim: func(e *Engine) {
		e.rpush(1)
		e.rpush(2)
		throwf(ThrowStackUnderflow)
	}}
	xt := e.dict.xtFor(ent)
	e.push(xt)
	e.dict.lookup("CATCH").prim(e)

	require.Equal(t, 1, e.RDepth())
	assert.Equal(t, Cell(7), e.rstack[0])
}

func TestThrowZeroIsNoop(t *testing.T) {
	e := newTestEngine(t)
	e.push(0)
	assert.NotPanics(t, func() { e.dict.lookup("THROW").prim(e) })
}

func TestThrowNonZeroPanics(t *testing.T) {
	e := newTestEngine(t)
	e.push(-9)
	assert.Panics(t, func() { e.dict.lookup("THROW").prim(e) })
}

func TestRecoverFaultTranslatesHostPanic(t *testing.T) {
	tp := recoverFault("boom")
	assert.Equal(t, Cell(ThrowInvalidMemory), tp.code)

	tp = recoverFault(throwPanic{code: Cell(ThrowAbort)})
	assert.Equal(t, Cell(ThrowAbort), tp.code)
}
