package vm

// F1 handlers take no operand; they act on the machine's registers
// alone. Grounded on original_source/instructionsF1.py.

func execFIX(m *Machine) error {
	m.Regs.SetA(uint32(int64(m.Regs.GetF())))
	return nil
}

func execFLOAT(m *Machine) error {
	m.Regs.SetF(float64(m.Regs.GetA()))
	return nil
}

// execNoOp implements the privileged/unimplemented instructions
// (HIO, NORM, SIO, TIO) that spec.md §1's Non-goals ask to recognise
// without any state change.
func execNoOp(m *Machine) error { return nil }

var f1Handlers = map[Opcode]func(*Machine) error{
	OpFIX:   execFIX,
	OpFLOAT: execFLOAT,
	OpHIO:   execNoOp,
	OpNORM:  execNoOp,
	OpSIO:   execNoOp,
	OpTIO:   execNoOp,
}
