package vm

import "errors"

// errDivideByZero is returned by DIV/DIVR/DIVF when the divisor is zero.
// spec.md §9 leaves divide-by-zero behaviour to the implementation's
// choice; here it is treated the same as any other handler error: logged
// and the cycle aborted, execution continues (see Step in executor.go).
var errDivideByZero = errors.New("vm: division by zero")
