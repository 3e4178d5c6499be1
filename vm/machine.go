package vm

import (
	"fmt"
	"strings"
)

// ProgramMeta holds the loader-supplied identity of the currently loaded
// object program, per spec.md §3.
type ProgramMeta struct {
	Name       string
	LoadAddr   uint32
	Length     uint32
	EntryPoint uint32
}

// Machine aggregates the memory, register file, and device bank that
// together make up one SIC/XE virtual machine instance, mirroring the
// teacher's VM struct shape: one owning type that the fetch/decode/execute
// engine operates on by method receiver.
type Machine struct {
	Memory    Memory
	Regs      Registers
	Devices   *DeviceBank
	Program   ProgramMeta
	Cycles    uint64
	halted    bool
	history   history
	diags     diagLog
	MaxCycles uint64 // 0 means unbounded
}

// NewMachine returns a freshly constructed, empty machine: zeroed memory
// and registers, reserved devices bound, no program loaded.
func NewMachine() *Machine {
	return &Machine{
		Devices: NewDeviceBank(),
	}
}

// Reset re-creates the machine's memory, registers, and device bank from
// scratch, per spec.md §3's lifecycle note. Program metadata is left
// untouched; callers that want a full reload should reapply the loader.
func (m *Machine) Reset() {
	m.Memory.Reset()
	m.Regs.Reset()
	m.Devices.Reset()
	m.Cycles = 0
	m.halted = false
	m.history = history{}
	m.diags = diagLog{}
}

// Halted reports whether the last Step detected the halt condition
// (PC unchanged across a cycle), per spec.md §4.8.
func (m *Machine) Halted() bool { return m.halted }

// IsRunning is the front-end hook named in spec.md §6.
func (m *Machine) IsRunning() bool { return !m.halted }

// InstructionHistory returns the bounded ring buffer of recently decoded
// instruction lines, oldest first.
func (m *Machine) InstructionHistory() []string { return m.history.Lines() }

// Diagnostics returns the bounded in-memory log of recovered decode,
// range, and device errors.
func (m *Machine) Diagnostics() []diagEntry { return m.diags.Entries() }

func (m *Machine) logf(format string, args ...any) {
	m.diags.record(m.Cycles, format, args...)
}

// DumpRegisters renders the register file as a single fixed-width line,
// the display helper named in spec.md §6. Grounded on the teacher's
// VM.DumpState.
func (m *Machine) DumpRegisters() string {
	return fmt.Sprintf(
		"PC=%05X A=%06X X=%06X L=%06X B=%06X S=%06X T=%06X SW=%06X CC=%s F=%v",
		m.Regs.GetPC(), m.Regs.GetA(), m.Regs.GetX(), m.Regs.GetL(),
		m.Regs.GetB(), m.Regs.GetS(), m.Regs.GetT(), m.Regs.GetSW(),
		m.Regs.GetCC(), m.Regs.GetF(),
	)
}

// HexDump renders rows*16 bytes of memory starting at addr as fixed-width
// hex-plus-ASCII lines, the "hex dump window" display helper named in
// spec.md §6. Grounded on the teacher's handleDumpMemory syscall handler.
// Addresses that run past the end of the address space are simply
// omitted rather than erroring, since this is a display helper, not a
// memory accessor.
func (m *Machine) HexDump(addr uint32, rows int) []string {
	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		base := addr + uint32(row*16)
		if base >= MemSize {
			break
		}
		var hexPart, asciiPart strings.Builder
		for col := uint32(0); col < 16; col++ {
			a := base + col
			if a >= MemSize {
				hexPart.WriteString("   ")
				asciiPart.WriteByte(' ')
				continue
			}
			b, _ := m.Memory.GetByte(a)
			fmt.Fprintf(&hexPart, "%02X ", b)
			if b >= 32 && b < 127 {
				asciiPart.WriteByte(b)
			} else {
				asciiPart.WriteByte('.')
			}
		}
		lines = append(lines, fmt.Sprintf("%05X: %s|%s|", base, hexPart.String(), asciiPart.String()))
	}
	return lines
}
