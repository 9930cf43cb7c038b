package depmode

import (
	"fmt"
	"reflect"
)

// Identifier names a registrable service within a container scope. Any
// comparable, non-nil value works: a reflect.Type, a string, a TypeKey, or a
// pointer used as a unique token.
type Identifier = any

// TypeKey identifies a keyed registration of a type, e.g. one of several
// Cache implementations registered under different names.
type TypeKey struct {
	Type reflect.Type
	Key  string
}

func (k TypeKey) String() string {
	return fmt.Sprintf("%s[%s]", formatType(k.Type), k.Key)
}

// TypeOf returns the reflect.Type identifier for T. Interfaces are returned
// as the interface type, not the type of a nil value.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Keyed returns the TypeKey identifier for T registered under key.
func Keyed[T any](key string) TypeKey {
	return TypeKey{Type: TypeOf[T](), Key: key}
}

// checkIdentifier reports why id cannot be used as an identifier, or nil.
func checkIdentifier(id Identifier) error {
	if id == nil {
		return ErrIdentifierNil
	}

	v := reflect.ValueOf(id)
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return ErrIdentifierNil
	}

	if k, ok := id.(TypeKey); ok && k.Type == nil {
		return ErrIdentifierNil
	}

	if !v.Comparable() {
		return ErrIdentifierNotComparable
	}

	return nil
}

// FormatIdentifier renders an identifier for error messages and logs.
func FormatIdentifier(id Identifier) string {
	switch v := id.(type) {
	case nil:
		return "<nil>"
	case reflect.Type:
		return formatType(v)
	case string:
		return fmt.Sprintf("%q", v)
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return fmt.Sprintf("%T(nil)", id)
		}
		return v.String()
	default:
		return fmt.Sprintf("%T(%v)", id, id)
	}
}

// formatType formats a type for display, keeping pointer and slice markers.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	if t.Name() == "" {
		return t.String()
	}

	if t.PkgPath() == "" {
		return t.Name()
	}

	return t.String()
}
