package vm

// Opcode identifies a single SIC/XE operation. The numeric value matches
// the architecture's assigned code; for the SIC/F3/F4 set the two
// low-order bits (n, i) are not part of the value and must be masked off
// before lookup.
type Opcode byte

// SIC / F3 / F4 opcodes. Values already have bits 0-1 cleared.
const (
	OpLDA    Opcode = 0x00
	OpLDX    Opcode = 0x04
	OpLDL    Opcode = 0x08
	OpSTA    Opcode = 0x0C
	OpSTX    Opcode = 0x10
	OpSTL    Opcode = 0x14
	OpADD    Opcode = 0x18
	OpSUB    Opcode = 0x1C
	OpMUL    Opcode = 0x20
	OpDIV    Opcode = 0x24
	OpCOMP   Opcode = 0x28
	OpTIX    Opcode = 0x2C
	OpJEQ    Opcode = 0x30
	OpJGT    Opcode = 0x34
	OpJLT    Opcode = 0x38
	OpJ      Opcode = 0x3C
	OpAND    Opcode = 0x40
	OpOR     Opcode = 0x44
	OpJSUB   Opcode = 0x48
	OpRSUB   Opcode = 0x4C
	OpLDCH   Opcode = 0x50
	OpSTCH   Opcode = 0x54
	OpADDF   Opcode = 0x58
	OpSUBF   Opcode = 0x5C
	OpMULF   Opcode = 0x60
	OpDIVF   Opcode = 0x64
	OpLDB    Opcode = 0x68
	OpLDS    Opcode = 0x6C
	OpLDF    Opcode = 0x70
	OpSTB    Opcode = 0x78
	OpLDT    Opcode = 0x74
	OpSTS    Opcode = 0x7C
	OpSTF    Opcode = 0x80
	OpCOMPF  Opcode = 0x88
	OpSTT    Opcode = 0x84
	OpSTI    Opcode = 0xD4
	OpSTSW   Opcode = 0xE8
	OpLPS    Opcode = 0xD0
	OpSSK    Opcode = 0xEC
	OpTD     Opcode = 0xE0
	OpRD     Opcode = 0xD8
	OpWD     Opcode = 0xDC
)

// F1 opcodes (single byte, no operand).
const (
	OpFIX   Opcode = 0xC4
	OpFLOAT Opcode = 0xC0
	OpHIO   Opcode = 0xF4
	OpNORM  Opcode = 0xC8
	OpSIO   Opcode = 0xF0
	OpTIO   Opcode = 0xF8
)

// F2 opcodes (two bytes: opcode + two register nibbles).
const (
	OpADDR   Opcode = 0x90
	OpCLEAR  Opcode = 0xB4
	OpCOMPR  Opcode = 0xA0
	OpDIVR   Opcode = 0x9C
	OpMULR   Opcode = 0x98
	OpRMO    Opcode = 0xAC
	OpSHIFTL Opcode = 0xA4
	OpSHIFTR Opcode = 0xA8
	OpSUBR   Opcode = 0x94
	OpSVC    Opcode = 0xB0
	OpTIXR   Opcode = 0xB8
)

var f1Set = map[Opcode]bool{
	OpFIX: true, OpFLOAT: true, OpHIO: true, OpNORM: true, OpSIO: true, OpTIO: true,
}

var f2Set = map[Opcode]bool{
	OpADDR: true, OpCLEAR: true, OpCOMPR: true, OpDIVR: true, OpMULR: true,
	OpRMO: true, OpSHIFTL: true, OpSHIFTR: true, OpSUBR: true, OpSVC: true, OpTIXR: true,
}

// storeOrJumpSet identifies opcodes whose parameter-resolution policy
// differs: under non-simple addressing, the target address itself (not
// the word found there) is the finalised parameter.
var storeOrJumpSet = map[Opcode]bool{
	OpSTA: true, OpSTB: true, OpSTCH: true, OpSTF: true, OpSTL: true,
	OpSTS: true, OpSTSW: true, OpSTT: true, OpSTX: true,
	OpJ: true, OpJEQ: true, OpJGT: true, OpJLT: true, OpJSUB: true,
}

// IsF1 reports whether opcode belongs to the one-byte format class.
func IsF1(op Opcode) bool { return f1Set[op] }

// IsF2 reports whether opcode belongs to the two-byte format class.
func IsF2(op Opcode) bool { return f2Set[op] }

// IsStoreOrJump reports whether opcode requires the store/jump
// parameter-resolution carve-out described in §4.8.
func IsStoreOrJump(op Opcode) bool { return storeOrJumpSet[op] }

// String returns the mnemonic for an opcode, or "UNKNOWN" for
// unrecognised values.
func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

var opcodeNames = map[Opcode]string{
	OpLDA: "LDA", OpLDX: "LDX", OpLDL: "LDL", OpSTA: "STA", OpSTX: "STX", OpSTL: "STL",
	OpADD: "ADD", OpSUB: "SUB", OpMUL: "MUL", OpDIV: "DIV", OpCOMP: "COMP", OpTIX: "TIX",
	OpJEQ: "JEQ", OpJGT: "JGT", OpJLT: "JLT", OpJ: "J", OpAND: "AND", OpOR: "OR",
	OpJSUB: "JSUB", OpRSUB: "RSUB", OpLDCH: "LDCH", OpSTCH: "STCH",
	OpADDF: "ADDF", OpSUBF: "SUBF", OpMULF: "MULF", OpDIVF: "DIVF",
	OpLDB: "LDB", OpLDS: "LDS", OpLDF: "LDF", OpSTB: "STB", OpLDT: "LDT", OpSTS: "STS",
	OpSTF: "STF", OpCOMPF: "COMPF", OpSTT: "STT", OpSTI: "STI", OpSTSW: "STSW",
	OpLPS: "LPS", OpSSK: "SSK", OpTD: "TD", OpRD: "RD", OpWD: "WD",
	OpFIX: "FIX", OpFLOAT: "FLOAT", OpHIO: "HIO", OpNORM: "NORM", OpSIO: "SIO", OpTIO: "TIO",
	OpADDR: "ADDR", OpCLEAR: "CLEAR", OpCOMPR: "COMPR", OpDIVR: "DIVR", OpMULR: "MULR",
	OpRMO: "RMO", OpSHIFTL: "SHIFTL", OpSHIFTR: "SHIFTR", OpSUBR: "SUBR", OpSVC: "SVC", OpTIXR: "TIXR",
}
