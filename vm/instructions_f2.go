package vm

// F2 handlers receive the two register nibbles r1, r2 decoded from the
// instruction's second byte. Grounded on original_source/instructionsF2.py.

func execADDR(m *Machine, r1, r2 Register) error {
	m.Regs.Set(r2, m.Regs.Get(r2)+m.Regs.Get(r1))
	return nil
}

func execSUBR(m *Machine, r1, r2 Register) error {
	m.Regs.Set(r2, m.Regs.Get(r2)-m.Regs.Get(r1))
	return nil
}

func execMULR(m *Machine, r1, r2 Register) error {
	m.Regs.Set(r2, m.Regs.Get(r2)*m.Regs.Get(r1))
	return nil
}

func execDIVR(m *Machine, r1, r2 Register) error {
	divisor := m.Regs.Get(r1)
	if divisor == 0 {
		return errDivideByZero
	}
	m.Regs.Set(r2, m.Regs.Get(r2)/divisor)
	return nil
}

func execCLEAR(m *Machine, r1, _ Register) error {
	m.Regs.Set(r1, 0)
	return nil
}

func execCOMPR(m *Machine, r1, r2 Register) error {
	m.Regs.SetCC(compare(m.Regs.Get(r1), m.Regs.Get(r2)))
	return nil
}

func execRMO(m *Machine, r1, r2 Register) error {
	m.Regs.Set(r2, m.Regs.Get(r1))
	return nil
}

// execSHIFTL and execSHIFTR deliberately do not mask the shifted result
// to 24 bits before storing; Registers.Set's mod-2^24 wrap does that
// implicitly, which means a large left shift zeroes the register. This
// reproduces original_source/instructionsF2.py's sicxeShiftl/Shiftr
// verbatim per spec.md §9's preserve-as-is list.
func execSHIFTL(m *Machine, r1, r2 Register) error {
	m.Regs.Set(r1, m.Regs.Get(r1)<<uint(r2))
	return nil
}

func execSHIFTR(m *Machine, r1, r2 Register) error {
	m.Regs.Set(r1, m.Regs.Get(r1)>>uint(r2))
	return nil
}

func execTIXR(m *Machine, r1, _ Register) error {
	m.Regs.SetX(m.Regs.GetX() + 1)
	m.Regs.SetCC(compare(m.Regs.GetX(), m.Regs.Get(r1)))
	return nil
}

func execSVC(m *Machine, _, _ Register) error { return nil }

var f2Handlers = map[Opcode]func(*Machine, Register, Register) error{
	OpADDR:   execADDR,
	OpSUBR:   execSUBR,
	OpMULR:   execMULR,
	OpDIVR:   execDIVR,
	OpCLEAR:  execCLEAR,
	OpCOMPR:  execCOMPR,
	OpRMO:    execRMO,
	OpSHIFTL: execSHIFTL,
	OpSHIFTR: execSHIFTR,
	OpTIXR:   execTIXR,
	OpSVC:    execSVC,
}
