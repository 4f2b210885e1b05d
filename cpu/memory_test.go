package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(50)
	assert.Equal(uint32(50), mem.Size())

	for addr := uint32(0); addr < mem.Size(); addr++ {
		assert.NoError(mem.Write(addr*3+1, addr))
	}
	for addr := uint32(0); addr < mem.Size(); addr++ {
		value, err := mem.Read(addr)
		assert.NoError(err)
		assert.Equal(addr*3+1, value)
	}
}

func TestMemory_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(8)
	assert.NoError(mem.Write(0xdead, 3))

	_, err := mem.Read(8)
	assert.ErrorIs(err, ErrAddressRange)

	err = mem.Write(1, 8)
	assert.ErrorIs(err, ErrAddressRange)

	err = mem.Write(1, 0xffffffff)
	assert.ErrorIs(err, ErrAddressRange)

	// Contents unchanged after failed access.
	value, err := mem.Read(3)
	assert.NoError(err)
	assert.Equal(uint32(0xdead), value)
}

func TestMemory_Clear(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(4)
	for addr := uint32(0); addr < 4; addr++ {
		mem.Write(0xffffffff, addr)
	}

	mem.Clear()
	for addr := uint32(0); addr < 4; addr++ {
		value, _ := mem.Read(addr)
		assert.Equal(uint32(0), value)
	}
}

func TestMemory_ClearRange(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(8)
	for addr := uint32(0); addr < 8; addr++ {
		mem.Write(7, addr)
	}

	assert.NoError(mem.ClearRange(2, 5))
	for addr := uint32(0); addr < 8; addr++ {
		value, _ := mem.Read(addr)
		if addr >= 2 && addr <= 5 {
			assert.Equal(uint32(0), value)
		} else {
			assert.Equal(uint32(7), value)
		}
	}

	assert.ErrorIs(mem.ClearRange(0, 8), ErrAddressRange)
	assert.ErrorIs(mem.ClearRange(8, 9), ErrAddressRange)
}
