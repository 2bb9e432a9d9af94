package autodiff

import (
	"errors"
	"fmt"
)

// ErrUnboundVariable is returned when a value or derivative query reaches
// a variable that has not been given a value yet.
var ErrUnboundVariable = errors.New("variable has no bound value")

// DomainError reports an elementary function evaluated outside its valid
// domain (log or sqrt of a non-positive number, inverse trig outside
// [-1, 1], division by zero, variable-exponent power with a non-positive
// base).
//
// Domain checks fire at evaluation time, not construction: an operand's
// value can change after the node is built via SetValue, so construction
// is too early to decide.
type DomainError struct {
	Op  string  // Operation name (e.g. "log", "sqrt", "div")
	Arg float64 // Offending argument value
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %s of %g", e.Op, e.Arg)
}
