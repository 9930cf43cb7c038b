package digadapter

import (
	"errors"
	"fmt"

	"github.com/junioryono/depmode"
)

var (
	ErrNotFunction           = errors.New("constructor must be a non-nil function")
	ErrVariadic              = errors.New("variadic constructors are not supported")
	ErrParameterCount        = errors.New("dependency count does not match constructor parameters")
	ErrIndexMismatch         = errors.New("dependency index does not match its position")
	ErrTypeMismatch          = errors.New("dependency identifier does not match parameter type")
	ErrUnsupportedIdentifier = errors.New("identifier must be a reflect.Type or depmode.TypeKey")
	ErrUnsupportedFlag       = errors.New("constraint has no dig equivalent")
)

var (
	_ error = SignatureError{}
	_ error = UnsupportedConstraintError{}
)

// SignatureError indicates a constructor whose parameters cannot be matched
// against its dependency list.
type SignatureError struct {
	Constructor string
	Index       int // -1 when the error concerns the whole signature
	Cause       error
}

func (e SignatureError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("constructor %s: %v", e.Constructor, e.Cause)
	}
	return fmt.Sprintf("constructor %s parameter %d: %v", e.Constructor, e.Index, e.Cause)
}

func (e SignatureError) Unwrap() error {
	return e.Cause
}

// UnsupportedConstraintError indicates a dependency using Self or SkipSelf.
type UnsupportedConstraintError struct {
	Index      int
	Identifier depmode.Identifier
	Mask       depmode.Mask
}

func (e UnsupportedConstraintError) Error() string {
	return fmt.Sprintf("dependency %d (%s): %s has no dig equivalent; register it in the scope that should own the lookup",
		e.Index, depmode.FormatIdentifier(e.Identifier), e.Mask&(depmode.Self|depmode.SkipSelf))
}

func (e UnsupportedConstraintError) Unwrap() error {
	return ErrUnsupportedFlag
}
