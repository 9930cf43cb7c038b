package depmode

import (
	"errors"
	"fmt"
	"strings"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// These are wrapped by the typed errors below; match them with errors.Is.

var (
	// Declaration errors.
	ErrMalformedDeclaration    = errors.New("malformed dependency declaration")
	ErrConflictingConstraints  = errors.New("Self and SkipSelf cannot both be set")
	ErrIdentifierNil           = errors.New("dependency identifier cannot be nil")
	ErrIdentifierNotComparable = errors.New("dependency identifier must be comparable")
	ErrUnknownShape            = errors.New("second element must be an integer mask or a constraints descriptor")

	// Mask errors.
	ErrMaskOutOfRange = errors.New("mask must be within [0, 15]")
	ErrMaskEmpty      = errors.New("mask text cannot be empty")

	// Registry errors.
	ErrServiceNil        = errors.New("service identifier cannot be nil")
	ErrAlreadyRegistered = errors.New("service already registered")
	ErrRegistryNil       = errors.New("registry cannot be nil")
)

var (
	_ error = MalformedDeclarationError{}
	_ error = ConflictingConstraintError{}
	_ error = MaskError{}
	_ error = AlreadyRegisteredError{}
	_ error = RegistrationError{}
	_ error = ManifestError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// MalformedDeclarationError indicates a dependency entry whose shape could not
// be interpreted: a nil or non-comparable identifier, or a pair whose second
// element is neither an integer mask nor a constraints descriptor.
type MalformedDeclarationError struct {
	Service Identifier
	Index   int
	Entry   any
	Cause   error
}

func (e MalformedDeclarationError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("malformed dependency %d of %s", e.Index, FormatIdentifier(e.Service)))
	if e.Entry != nil {
		b.WriteString(fmt.Sprintf(" (%#v)", e.Entry))
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e MalformedDeclarationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrMalformedDeclaration}
	}
	return []error{ErrMalformedDeclaration, e.Cause}
}

// ConflictingConstraintError indicates a mask with both Self and SkipSelf set.
// The two describe mutually exclusive search origins.
type ConflictingConstraintError struct {
	Service    Identifier
	Index      int
	Identifier Identifier
	Mask       Mask
}

func (e ConflictingConstraintError) Error() string {
	var b strings.Builder
	if e.Service != nil {
		b.WriteString(fmt.Sprintf("conflicting constraints on dependency %d (%s) of %s: %s\n\n",
			e.Index, FormatIdentifier(e.Identifier), FormatIdentifier(e.Service), e.Mask))
	} else {
		b.WriteString(fmt.Sprintf("conflicting constraints: %s\n\n", e.Mask))
	}

	b.WriteString("Self searches only the current container while SkipSelf starts at the parent.\n")
	b.WriteString("To resolve this:\n")
	b.WriteString("  • Remove Self to search from the parent container upwards\n")
	b.WriteString("  • Remove SkipSelf to search the current container only\n")

	return b.String()
}

func (e ConflictingConstraintError) Unwrap() error {
	return ErrConflictingConstraints
}

// MaskError indicates a mask value or text that could not be parsed.
type MaskError struct {
	Value string
	Cause error
}

func (e MaskError) Error() string {
	return fmt.Sprintf("invalid mask %q: %v", e.Value, e.Cause)
}

func (e MaskError) Unwrap() error {
	return e.Cause
}

// AlreadyRegisteredError indicates a service is registered twice on a strict registry.
type AlreadyRegisteredError struct {
	Service Identifier
}

func (e AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("service %s already registered", FormatIdentifier(e.Service))
}

func (e AlreadyRegisteredError) Unwrap() error {
	return ErrAlreadyRegistered
}

// RegistrationError wraps a failure to register a service. The service is
// never stored when this error is returned.
type RegistrationError struct {
	Service Identifier
	Cause   error
}

func (e RegistrationError) Error() string {
	return fmt.Sprintf("failed to register %s: %v", FormatIdentifier(e.Service), e.Cause)
}

func (e RegistrationError) Unwrap() error {
	return e.Cause
}

// ManifestError wraps a failure while loading or applying a declaration manifest.
type ManifestError struct {
	Service string // empty when the document itself could not be decoded
	Cause   error
}

func (e ManifestError) Error() string {
	if e.Service == "" {
		return fmt.Sprintf("manifest: %v", e.Cause)
	}
	return fmt.Sprintf("manifest service %q: %v", e.Service, e.Cause)
}

func (e ManifestError) Unwrap() error {
	return e.Cause
}

// IsMalformedDeclaration reports whether err is a MalformedDeclarationError.
func IsMalformedDeclaration(err error) bool {
	var target MalformedDeclarationError
	return errors.As(err, &target)
}

// IsConflictingConstraint reports whether err is a ConflictingConstraintError.
func IsConflictingConstraint(err error) bool {
	var target ConflictingConstraintError
	return errors.As(err, &target)
}
