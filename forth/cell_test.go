package forth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlag(t *testing.T) {
	assert.Equal(t, True, flag(true))
	assert.Equal(t, False, flag(false))
}

func TestCellWraparound(t *testing.T) {
	var c Cell = 1<<31 - 1
	c++
	assert.Equal(t, Cell(-1<<31), c, "signed 32-bit overflow must wrap, not panic")
}

func TestDoublePackRoundTrip(t *testing.T) {
	cases := []struct{ lo, hi Cell }{
		{0, 0},
		{1, 0},
		{-1, -1},
		{0, 1},
		{1234, -5678},
	}
	for _, c := range cases {
		lo, hi := dunpack(dpack(c.lo, c.hi))
		assert.Equal(t, c.lo, lo)
		assert.Equal(t, c.hi, hi)
	}
}

func TestUnsignedDoublePackRoundTrip(t *testing.T) {
	lo, hi := udunpack(udpack(42, 7))
	assert.Equal(t, Cell(42), lo)
	assert.Equal(t, Cell(7), hi)
}
