package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpRegistersIncludesAllFields(t *testing.T) {
	m := NewMachine()
	m.Regs.SetA(0x123456)
	m.Regs.SetPC(0x10)
	out := m.DumpRegisters()
	assert.Contains(t, out, "PC=00010")
	assert.Contains(t, out, "A=123456")
	assert.Contains(t, out, "CC=")
	assert.Contains(t, out, "F=")
}

func TestHexDumpRowsAndContent(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Memory.SetByte(0, 0x41))
	lines := m.HexDump(0, 2)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "41")
	assert.Contains(t, lines[0], "A")
}

func TestHexDumpStopsAtEndOfAddressSpace(t *testing.T) {
	m := NewMachine()
	lines := m.HexDump(MemSize-16, 5)
	assert.Len(t, lines, 1)
}
