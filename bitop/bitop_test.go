package bitop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestBit(t *testing.T) {
	assert := assert.New(t)

	set, err := TestBit(0b1010, 1)
	assert.NoError(err)
	assert.True(set)

	set, err = TestBit(0b1010, 0)
	assert.NoError(err)
	assert.False(set)

	set, err = TestBit(0x80000000, 31)
	assert.NoError(err)
	assert.True(set)
}

func TestTestBit_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	_, err := TestBit(0, 32)
	assert.ErrorIs(err, ErrBitRange)

	_, err = TestBit(0, 100)
	assert.ErrorIs(err, ErrBitRange)
}

func TestTestBitAll(t *testing.T) {
	assert := assert.New(t)

	assert.True(TestBitAll(0xffffffff))
	assert.False(TestBitAll(0xfffffffe))
	assert.False(TestBitAll(0x7fffffff))
	assert.False(TestBitAll(0))
}

func TestTestBitAllLast(t *testing.T) {
	assert := assert.New(t)

	all, err := TestBitAllLast(0b0111, 2)
	assert.NoError(err)
	assert.True(all)

	all, err = TestBitAllLast(0b0101, 2)
	assert.NoError(err)
	assert.False(all)

	// Last bit index covering the whole word.
	all, err = TestBitAllLast(0xffffffff, 31)
	assert.NoError(err)
	assert.True(all)

	_, err = TestBitAllLast(0, 32)
	assert.ErrorIs(err, ErrBitRange)
}

func TestTestBitAnyNone(t *testing.T) {
	assert := assert.New(t)

	assert.True(TestBitAny(0x10))
	assert.False(TestBitAny(0))
	assert.True(TestBitNone(0))
	assert.False(TestBitNone(0x10))

	any, err := TestBitAnyLast(0b1000, 2)
	assert.NoError(err)
	assert.False(any)

	none, err := TestBitNoneLast(0b1000, 2)
	assert.NoError(err)
	assert.True(none)

	none, err = TestBitNoneLast(0b1000, 3)
	assert.NoError(err)
	assert.False(none)
}

func TestSetBit(t *testing.T) {
	assert := assert.New(t)

	value, err := SetBit(0, 0, 2, 31)
	assert.NoError(err)
	assert.Equal(uint32(0x80000005), value)

	// Invalid position leaves the input untouched.
	value, err = SetBit(0b1, 1, 32)
	assert.ErrorIs(err, ErrBitRange)
	assert.Equal(uint32(0b1), value)
}

func TestResetBit(t *testing.T) {
	assert := assert.New(t)

	value, err := ResetBit(0xff, 0, 7)
	assert.NoError(err)
	assert.Equal(uint32(0x7e), value)

	value, err = ResetBit(0xff, 40)
	assert.ErrorIs(err, ErrBitRange)
	assert.Equal(uint32(0xff), value)
}

func TestFlipBit(t *testing.T) {
	assert := assert.New(t)

	value, err := FlipBit(0b1010, 0, 1)
	assert.NoError(err)
	assert.Equal(uint32(0b1001), value)

	// No positions complements the whole word.
	value, err = FlipBit(0)
	assert.NoError(err)
	assert.Equal(uint32(0xffffffff), value)

	value, err = FlipBit(0xf0f0f0f0)
	assert.NoError(err)
	assert.Equal(uint32(0x0f0f0f0f), value)

	_, err = FlipBit(0, 32)
	assert.ErrorIs(err, ErrBitRange)
}

func TestPromote(t *testing.T) {
	assert := assert.New(t)

	// The promoted product must not wrap at 32 bits.
	product := Promote(0xffffffff) * Promote(2)
	assert.Equal(uint64(0x1fffffffe), product)
	assert.Equal(uint32(0xfffffffe), uint32(product))
}
