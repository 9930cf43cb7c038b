package depmode

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	sentinelErrors := []struct {
		err     error
		message string
	}{
		{ErrMalformedDeclaration, "malformed dependency declaration"},
		{ErrConflictingConstraints, "Self and SkipSelf cannot both be set"},
		{ErrIdentifierNil, "dependency identifier cannot be nil"},
		{ErrIdentifierNotComparable, "dependency identifier must be comparable"},
		{ErrMaskOutOfRange, "mask must be within [0, 15]"},
		{ErrServiceNil, "service identifier cannot be nil"},
		{ErrAlreadyRegistered, "service already registered"},
	}

	for _, tt := range sentinelErrors {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestMalformedDeclarationError(t *testing.T) {
	err := MalformedDeclarationError{
		Service: "userService",
		Index:   1,
		Entry:   "x",
		Cause:   ErrUnknownShape,
	}

	assert.Equal(t,
		`malformed dependency 1 of "userService" ("x"): second element must be an integer mask or a constraints descriptor`,
		err.Error())
	assert.True(t, errors.Is(err, ErrMalformedDeclaration))
	assert.True(t, errors.Is(err, ErrUnknownShape))

	bare := MalformedDeclarationError{Service: "s"}
	assert.Equal(t, `malformed dependency 0 of "s"`, bare.Error())
	assert.True(t, errors.Is(bare, ErrMalformedDeclaration))
}

func TestConflictingConstraintError(t *testing.T) {
	err := ConflictingConstraintError{
		Service:    reflect.TypeOf(0),
		Index:      2,
		Identifier: "cache",
		Mask:       Self | SkipSelf | Optional,
	}

	msg := err.Error()
	assert.Contains(t, msg, `conflicting constraints on dependency 2 ("cache") of int: Self|SkipSelf|Optional`)
	assert.Contains(t, msg, "Remove Self")
	assert.Contains(t, msg, "Remove SkipSelf")
	assert.True(t, errors.Is(err, ErrConflictingConstraints))

	anonymous := ConflictingConstraintError{Mask: Self | SkipSelf}
	assert.Contains(t, anonymous.Error(), "conflicting constraints: Self|SkipSelf")
}

func TestRegistrationErrors(t *testing.T) {
	dup := AlreadyRegisteredError{Service: "a"}
	assert.Equal(t, `service "a" already registered`, dup.Error())

	reg := RegistrationError{Service: "a", Cause: dup}
	assert.Equal(t, `failed to register "a": service "a" already registered`, reg.Error())
	assert.True(t, errors.Is(reg, ErrAlreadyRegistered))

	m := ManifestError{Service: "a", Cause: reg}
	assert.Equal(t, `manifest service "a": failed to register "a": service "a" already registered`, m.Error())
	assert.Equal(t, "manifest: boom", ManifestError{Cause: errors.New("boom")}.Error())
}

func TestFormatIdentifier(t *testing.T) {
	type local struct{}
	var nilKey *TypeKey

	tests := []struct {
		id       Identifier
		expected string
	}{
		{nil, "<nil>"},
		{"logger", `"logger"`},
		{reflect.TypeOf(0), "int"},
		{reflect.TypeOf(&local{}), "*depmode.local"},
		{TypeKey{Type: reflect.TypeOf(""), Key: "primary"}, "string[primary]"},
		{nilKey, "*depmode.TypeKey(nil)"},
		{42, "int(42)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatIdentifier(tt.id))
	}
}

func TestCheckIdentifier(t *testing.T) {
	assert.NoError(t, checkIdentifier("x"))
	assert.NoError(t, checkIdentifier(TypeOf[error]()))
	assert.NoError(t, checkIdentifier(Keyed[int]("k")))
	assert.ErrorIs(t, checkIdentifier(nil), ErrIdentifierNil)
	assert.ErrorIs(t, checkIdentifier((*int)(nil)), ErrIdentifierNil)
	assert.ErrorIs(t, checkIdentifier(TypeKey{Key: "k"}), ErrIdentifierNil)
	assert.ErrorIs(t, checkIdentifier(TypeKey{}), ErrIdentifierNil)
	assert.ErrorIs(t, checkIdentifier(map[string]int{}), ErrIdentifierNotComparable)
	assert.ErrorIs(t, checkIdentifier(func() {}), ErrIdentifierNotComparable)
}
