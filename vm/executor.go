package vm

import "fmt"

// fetchByte reads the byte at PC and advances PC by one.
func (m *Machine) fetchByte() (byte, error) {
	b, err := m.Memory.GetByte(m.Regs.GetPC())
	if err != nil {
		return 0, err
	}
	m.Regs.SetPC(m.Regs.GetPC() + 1)
	return b, nil
}

// decoded holds everything the TA/parameter resolution and dispatch
// stages need from one fetch+decode pass.
type decoded struct {
	opcode   Opcode
	nb       Nixbpe
	legacy   bool // true for the 3-byte legacy-SIC encoding
	operandU uint32
	operandS int32
	f4       bool
}

// decodeSICF3F4 implements spec.md §4.8 step 4: classify legacy-SIC vs
// modern F3/F4 encoding and extract nixbpe plus the operand field.
// Grounded on original_source/machine.py's execute().
func (m *Machine) decodeSICF3F4(byte1 byte) (decoded, error) {
	if byte1&0x03 == 0 {
		byte2, err := m.fetchByte()
		if err != nil {
			return decoded{}, err
		}
		byte3, err := m.fetchByte()
		if err != nil {
			return decoded{}, err
		}
		x := byte2&0x80 != 0
		operand := (uint32(byte2&0x7F) << 8) | uint32(byte3)
		signed := int32(operand)
		if operand&0x4000 != 0 {
			signed = int32(operand) - (1 << 15)
		}
		return decoded{
			opcode:   Opcode(byte1 & 0xFC),
			nb:       Nixbpe{X: x},
			legacy:   true,
			operandU: operand,
			operandS: signed,
		}, nil
	}

	nb := Nixbpe{N: byte1&0x02 != 0, I: byte1&0x01 != 0}
	byte2, err := m.fetchByte()
	if err != nil {
		return decoded{}, err
	}
	nb.X = byte2&0x80 != 0
	nb.B = byte2&0x40 != 0
	nb.P = byte2&0x20 != 0
	nb.E = byte2&0x10 != 0

	byte3, err := m.fetchByte()
	if err != nil {
		return decoded{}, err
	}

	if nb.E {
		byte4, err := m.fetchByte()
		if err != nil {
			return decoded{}, err
		}
		operand := (uint32(byte2&0x0F) << 16) | (uint32(byte3) << 8) | uint32(byte4)
		signed := int32(operand)
		if operand&0x80000 != 0 {
			signed = int32(operand) - (1 << 20)
		}
		return decoded{opcode: Opcode(byte1 & 0xFC), nb: nb, operandU: operand, operandS: signed, f4: true}, nil
	}

	operand := (uint32(byte2&0x0F) << 8) | uint32(byte3)
	signed := int32(operand)
	if operand&0x800 != 0 {
		signed = int32(operand) - (1 << 12)
	}
	return decoded{opcode: Opcode(byte1 & 0xFC), nb: nb, operandU: operand, operandS: signed}, nil
}

// targetAddress implements spec.md §4.8 step 5.
func (m *Machine) targetAddress(d decoded) (uint32, error) {
	if d.nb.X && (d.nb.Immediate() || d.nb.Indirect()) {
		return 0, fmt.Errorf("vm: indexing is incompatible with immediate/indirect addressing")
	}

	var ta uint32
	switch {
	case d.legacy:
		ta = d.operandU
	case !d.nb.B && !d.nb.P:
		ta = d.operandU
	case d.nb.B && !d.nb.P:
		ta = m.Regs.GetB() + d.operandU
	case !d.nb.B && d.nb.P:
		ta = uint32(int64(m.Regs.GetPC()) + int64(d.operandS))
	default:
		return 0, fmt.Errorf("vm: invalid base+pc-relative addressing combination")
	}

	if d.nb.X {
		ta += m.Regs.GetX()
	}
	return ta & (MemSize - 1), nil
}

// resolveParameter implements spec.md §4.8 step 6, including the
// store/jump carve-out.
func (m *Machine) resolveParameter(d decoded, ta uint32) (uint32, error) {
	if IsStoreOrJump(d.opcode) {
		if d.nb.Simple() {
			return m.Memory.GetWord(ta)
		}
		return ta, nil
	}

	switch {
	case d.nb.Immediate():
		return ta, nil
	case d.nb.Indirect():
		ptr, err := m.Memory.GetWord(ta)
		if err != nil {
			return 0, err
		}
		return m.Memory.GetWord(ptr)
	default: // simple, or legacy's bare n=0,i=0 default
		return m.Memory.GetWord(ta)
	}
}

// Step executes exactly one fetch/decode/execute cycle, per spec.md §4.8.
// Recoverable errors (decode, range, device) are logged and the cycle is
// aborted without returning an error to the caller; only an unexpected
// host-level failure in a caller-visible sense would propagate, which
// does not occur for machine-internal errors by design.
func (m *Machine) Step() {
	pcBefore := m.Regs.GetPC()

	byte1, err := m.fetchByte()
	if err != nil {
		m.logf("fetch: %v", err)
		m.halted = pcBefore == m.Regs.GetPC()
		m.Cycles++
		return
	}

	opcode := Opcode(byte1 &^ 0x03)

	switch {
	case IsF1(opcode):
		if err := f1Handlers[opcode](m); err != nil {
			m.logf("%s: %v", opcode, err)
		} else {
			m.history.add(fmt.Sprintf("%-40s", opcode.String()))
		}

	case IsF2(opcode):
		byte2, err := m.fetchByte()
		if err != nil {
			m.logf("fetch: %v", err)
			break
		}
		r1, r2 := Register(byte2>>4), Register(byte2&0x0F)
		handler, ok := f2Handlers[opcode]
		if !ok {
			m.logf("decode: unknown F2 opcode 0x%02X", byte1)
			break
		}
		if err := handler(m, r1, r2); err != nil {
			m.logf("%s: %v", opcode, err)
		} else {
			m.history.add(fmt.Sprintf("%-40s", fmt.Sprintf("%s %s,%s", opcode, r1, r2)))
		}

	default:
		handler, err := lookupSICF3F4(opcode)
		if err != nil {
			m.logf("decode: %v", err)
			break
		}
		d, err := m.decodeSICF3F4(byte1)
		if err != nil {
			m.logf("decode: %v", err)
			break
		}
		ta, err := m.targetAddress(d)
		if err != nil {
			m.logf("decode: %v", err)
			break
		}
		param, err := m.resolveParameter(d, ta)
		if err != nil {
			m.logf("%s: %v", d.opcode, err)
			break
		}
		if err := handler(m, d.nb, ta, param); err != nil {
			m.logf("%s: %v", d.opcode, err)
		} else {
			m.history.add(fmt.Sprintf("%-40s", fmt.Sprintf("%s 0x%05X", d.opcode, ta)))
		}
	}

	m.Cycles++
	m.halted = pcBefore == m.Regs.GetPC()
}

// Run steps the machine until it halts (PC unchanged across a cycle) or
// MaxCycles is reached (0 means unbounded).
func (m *Machine) Run() {
	for {
		m.Step()
		if m.Halted() {
			return
		}
		if m.MaxCycles != 0 && m.Cycles >= m.MaxCycles {
			return
		}
	}
}
