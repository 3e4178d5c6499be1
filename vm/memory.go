package vm

import "fmt"

// MemSize is the size of the SIC/XE address space: 20-bit byte addressing.
const MemSize = 1 << 20

// Memory is the machine's byte-addressable store. It is implemented as a
// dense buffer rather than the sparse default-zero map of the reference
// implementation (see spec.md §9): at one mebibyte the address space is
// small enough that a flat array needs no sparse representation, and
// every access becomes a plain slice index.
type Memory struct {
	bytes [MemSize]byte
}

// inRange reports whether addr is a valid single-byte address.
func inRange(addr uint32) bool { return addr < MemSize }

// GetByte reads one byte. Out-of-range addresses are reported and read
// as zero, per spec.md §7's range-error policy.
func (m *Memory) GetByte(addr uint32) (byte, error) {
	if !inRange(addr) {
		return 0, fmt.Errorf("memory: read out of range at 0x%05X", addr)
	}
	return m.bytes[addr], nil
}

// SetByte writes one byte. Out-of-range writes are reported and
// discarded.
func (m *Memory) SetByte(addr uint32, b byte) error {
	if !inRange(addr) {
		return fmt.Errorf("memory: write out of range at 0x%05X", addr)
	}
	m.bytes[addr] = b
	return nil
}

// GetWord reads a 3-byte big-endian unsigned value. The entire 3-byte
// span must be in range.
func (m *Memory) GetWord(addr uint32) (uint32, error) {
	if !inRange(addr) || !inRange(addr+2) {
		return 0, fmt.Errorf("memory: word read out of range at 0x%05X", addr)
	}
	return uint32(m.bytes[addr])<<16 | uint32(m.bytes[addr+1])<<8 | uint32(m.bytes[addr+2]), nil
}

// SetWord writes the low 24 bits of w as three big-endian bytes.
func (m *Memory) SetWord(addr uint32, w uint32) error {
	if !inRange(addr) || !inRange(addr+2) {
		return fmt.Errorf("memory: word write out of range at 0x%05X", addr)
	}
	m.bytes[addr] = byte(w >> 16)
	m.bytes[addr+1] = byte(w >> 8)
	m.bytes[addr+2] = byte(w)
	return nil
}

// GetFloat reads a 6-byte float via the codec in float.go. The entire
// 6-byte span must be in range.
func (m *Memory) GetFloat(addr uint32) (float64, error) {
	if !inRange(addr) || !inRange(addr+5) {
		return 0, fmt.Errorf("memory: float read out of range at 0x%05X", addr)
	}
	var buf [6]byte
	copy(buf[:], m.bytes[addr:addr+6])
	return bytes2float(buf), nil
}

// SetFloat writes v as a 6-byte float via the codec in float.go.
func (m *Memory) SetFloat(addr uint32, v float64) error {
	if !inRange(addr) || !inRange(addr+5) {
		return fmt.Errorf("memory: float write out of range at 0x%05X", addr)
	}
	buf := float2bytes(v)
	copy(m.bytes[addr:addr+6], buf[:])
	return nil
}

// LoadBytes writes a contiguous run of bytes starting at addr, used by
// the object loader's T records.
func (m *Memory) LoadBytes(addr uint32, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	end := addr + uint32(len(data)) - 1
	if !inRange(addr) || !inRange(end) {
		return fmt.Errorf("memory: load out of range at 0x%05X (%d bytes)", addr, len(data))
	}
	copy(m.bytes[addr:], data)
	return nil
}

// Reset zeroes the entire address space.
func (m *Memory) Reset() {
	m.bytes = [MemSize]byte{}
}
