package cpu

// Memory is a fixed-size array of words. It is untyped with respect to
// instructions versus data; interpretation is entirely up to segment
// assignment.
type Memory struct {
	Data []uint32
}

// NewMemory creates a zeroed memory of the given word count.
func NewMemory(size uint32) *Memory {
	return &Memory{
		Data: make([]uint32, size),
	}
}

// Size returns the number of words.
func (m *Memory) Size() uint32 {
	return uint32(len(m.Data))
}

// Contains reports whether addr indexes a valid slot.
func (m *Memory) Contains(addr uint32) bool {
	return addr < m.Size()
}

// Read returns the word at addr.
func (m *Memory) Read(addr uint32) (value uint32, err error) {
	if !m.Contains(addr) {
		err = ErrAddressRange
		return
	}

	value = m.Data[addr]
	return
}

// Write stores value at addr.
func (m *Memory) Write(value uint32, addr uint32) (err error) {
	if !m.Contains(addr) {
		err = ErrAddressRange
		return
	}

	m.Data[addr] = value
	return
}

// Clear zeroes every slot.
func (m *Memory) Clear() {
	clear(m.Data)
}

// ClearRange zeroes the inclusive range [begin, end].
func (m *Memory) ClearRange(begin, end uint32) (err error) {
	if !m.Contains(begin) || !m.Contains(end) {
		err = ErrAddressRange
		return
	}

	for i := begin; i <= end; i++ {
		m.Data[i] = 0
	}

	return
}
