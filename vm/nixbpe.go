package vm

// Nixbpe carries the six addressing-mode bits decoded from a SIC/XE
// instruction: n (indirect), i (immediate), x (indexed), b (base-relative),
// p (pc-relative), e (format-4 extended). A zero-value Nixbpe is the
// legacy-SIC default (all bits clear).
type Nixbpe struct {
	N, I, X, B, P, E bool
}

// Tuple returns the six flags as a fixed-size array, convenient for
// pattern-matching in a switch statement.
func (nb Nixbpe) Tuple() [6]bool {
	return [6]bool{nb.N, nb.I, nb.X, nb.B, nb.P, nb.E}
}

// Simple reports simple addressing (n=1, i=1).
func (nb Nixbpe) Simple() bool { return nb.N && nb.I }

// Indirect reports indirect addressing (n=1, i=0).
func (nb Nixbpe) Indirect() bool { return nb.N && !nb.I }

// Immediate reports immediate addressing (n=0, i=1).
func (nb Nixbpe) Immediate() bool { return !nb.N && nb.I }

// Neither reports the n=0, i=0 combination. For the legacy 3-byte SIC
// encoding this is the only possible value. resolveParameter reads the
// word at the target address for it, as for simple addressing, except
// for store/jump opcodes, which take the target address itself.
func (nb Nixbpe) Neither() bool { return !nb.N && !nb.I }
