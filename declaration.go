package depmode

import (
	"fmt"
	"reflect"
)

// Declaration is one authored dependency slot of a service. It is a closed
// set of shapes, each resolving to an identifier and a mask:
//
//   - Bare: an identifier with no constraints
//   - WithMask: an identifier paired with a raw Mask
//   - WithConstraints: an identifier paired with a Constraints descriptor
//   - WithOptions: an identifier paired with an Options object
type Declaration interface {
	// Identifier returns the declared service identifier.
	Identifier() Identifier

	// Mask returns the declared constraints as a bitmask. No validation is applied.
	Mask() Mask

	declaration()
}

// Bare declares a dependency with no constraints.
type Bare struct {
	ID Identifier
}

// WithMask declares a dependency with a raw bitmask, used verbatim.
type WithMask struct {
	ID   Identifier
	Bits Mask
}

// WithConstraints declares a dependency with a structured descriptor.
type WithConstraints struct {
	ID          Identifier
	Constraints Constraints
}

// WithOptions declares a dependency with an options object.
type WithOptions struct {
	ID      Identifier
	Options Options
}

var (
	_ Declaration = Bare{}
	_ Declaration = WithMask{}
	_ Declaration = WithConstraints{}
	_ Declaration = WithOptions{}
)

func (d Bare) Identifier() Identifier { return d.ID }
func (d Bare) Mask() Mask { return None }
func (Bare) declaration() {}
func (d WithMask) Identifier() Identifier { return d.ID }
func (d WithMask) Mask() Mask { return d.Bits }
func (WithMask) declaration() {}
func (d WithConstraints) Identifier() Identifier { return d.ID }
func (d WithConstraints) Mask() Mask { return d.Constraints.Mask() }
func (WithConstraints) declaration() {}
func (d WithOptions) Identifier() Identifier { return d.ID }
func (d WithOptions) Mask() Mask { return d.Options.Mask() }
func (WithOptions) declaration() {}

// Dep declares a dependency on id with no constraints.
func Dep(id Identifier) Declaration {
	return Bare{ID: id}
}

// DepMask declares a dependency on id with the given mask.
//
//	depmode.DepMask(depmode.TypeOf[Cache](), depmode.Optional|depmode.Self)
func DepMask(id Identifier, m Mask) Declaration {
	return WithMask{ID: id, Bits: m}
}

// DepWith declares a dependency on id with a constraints descriptor.
func DepWith(id Identifier, c Constraints) Declaration {
	return WithConstraints{ID: id, Constraints: c}
}

// Pair is a two-element dependency entry for dynamically built lists. The
// second element is an integer mask or a descriptor.
type Pair [2]any

// descriptor keys recognised in map-shaped descriptors.
var descriptorKeys = [...]struct {
	key  string
	flag Mask
}{
	{"self", Self},
	{"skipSelf", SkipSelf},
	{"optional", Optional},
	{"many", Many},
}

// ParseDeclaration inspects a dynamically typed entry and returns the
// matching Declaration. Entries that are not two-element pairs are bare
// identifiers. A pair's second element selects the shape:
//
//   - any integer kind: WithMask, used verbatim (must be within [0, 15])
//   - Constraints, *Constraints, or a map with string keys: WithConstraints
//   - Options, *Options, or a map carrying a "mode" key: WithOptions
//
// Anything else is reported with ErrUnknownShape. Unknown keys in map
// descriptors are ignored; recognised keys must hold booleans. A map may
// carry "mode" or the boolean keys, not both.
func ParseDeclaration(entry any) (Declaration, error) {
	if d, ok := entry.(Declaration); ok {
		return d, nil
	}

	id, second, isPair := splitPair(entry)
	if !isPair {
		return Bare{ID: entry}, nil
	}

	switch v := second.(type) {
	case Mask:
		return WithMask{ID: id, Bits: v}, nil
	case Constraints:
		return WithConstraints{ID: id, Constraints: v}, nil
	case *Constraints:
		if v == nil {
			return WithConstraints{ID: id}, nil
		}
		return WithConstraints{ID: id, Constraints: *v}, nil
	case Options:
		return WithOptions{ID: id, Options: v}, nil
	case *Options:
		if v == nil {
			return WithOptions{ID: id}, nil
		}
		return WithOptions{ID: id, Options: *v}, nil
	case map[string]any:
		return parseDescriptorMap(id, v)
	}

	if fields, ok := stringKeyedMap(second); ok {
		return parseDescriptorMap(id, fields)
	}

	if m, ok, err := integerMask(second); ok {
		if err != nil {
			return nil, err
		}
		return WithMask{ID: id, Bits: m}, nil
	}

	return nil, fmt.Errorf("%w, got %T", ErrUnknownShape, second)
}

// splitPair reports whether entry is array-like with exactly two elements.
func splitPair(entry any) (Identifier, any, bool) {
	switch v := entry.(type) {
	case Pair:
		return v[0], v[1], true
	case [2]any:
		return v[0], v[1], true
	case []any:
		if len(v) == 2 {
			return v[0], v[1], true
		}
		return nil, nil, false
	}

	return nil, nil, false
}

// integerMask converts any integer kind to a Mask. The second result is false
// when second is not an integer at all.
func integerMask(second any) (Mask, bool, error) {
	if second == nil {
		return 0, false, nil
	}

	v := reflect.ValueOf(second)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if n < 0 || n > int64(maxMask) {
			return 0, true, MaskError{Value: fmt.Sprint(n), Cause: ErrMaskOutOfRange}
		}
		return Mask(n), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := v.Uint()
		if n > uint64(maxMask) {
			return 0, true, MaskError{Value: fmt.Sprint(n), Cause: ErrMaskOutOfRange}
		}
		return Mask(n), true, nil
	}

	return 0, false, nil
}

// stringKeyedMap copies any map with string keys, such as map[string]bool,
// into a map[string]any.
func stringKeyedMap(second any) (map[string]any, bool) {
	if second == nil {
		return nil, false
	}

	v := reflect.ValueOf(second)
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	fields := make(map[string]any, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		fields[iter.Key().String()] = iter.Value().Interface()
	}

	return fields, true
}

func parseDescriptorMap(id Identifier, fields map[string]any) (Declaration, error) {
	if mode, ok := fields["mode"]; ok {
		for _, k := range descriptorKeys {
			if _, set := fields[k.key]; set {
				return nil, fmt.Errorf("%w: descriptor cannot combine mode with %q", ErrUnknownShape, k.key)
			}
		}

		m, isInt, err := integerMask(mode)
		if !isInt {
			return nil, fmt.Errorf("%w: mode must be an integer, got %T", ErrUnknownShape, mode)
		}
		if err != nil {
			return nil, err
		}
		return WithOptions{ID: id, Options: Options{Mode: m}}, nil
	}

	var m Mask
	for _, k := range descriptorKeys {
		raw, ok := fields[k.key]
		if !ok || raw == nil {
			continue
		}

		set, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: descriptor field %q must be a boolean, got %T", ErrUnknownShape, k.key, raw)
		}
		if set {
			m |= k.flag
		}
	}

	return WithConstraints{ID: id, Constraints: ConstraintsOf(m)}, nil
}
