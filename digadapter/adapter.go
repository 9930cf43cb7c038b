package digadapter

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/dig"

	"github.com/junioryono/depmode"
)

var inType = reflect.TypeOf(dig.In{})

// Provider is satisfied by *dig.Container and *dig.Scope.
type Provider interface {
	Provide(constructor any, opts ...dig.ProvideOption) error
}

// Invoker is satisfied by *dig.Container and *dig.Scope.
type Invoker interface {
	Invoke(function any, opts ...dig.InvokeOption) error
}

// Provide wraps constructor with deps (see Wrap) and provides it to p.
func Provide(p Provider, constructor any, deps []depmode.Dependency, opts ...dig.ProvideOption) error {
	wrapped, err := Wrap(constructor, deps)
	if err != nil {
		return err
	}

	return p.Provide(wrapped, opts...)
}

// ProvideMany provides constructor as a member of the Many group for elem.
// The constructor must return elem (optionally followed by an error).
func ProvideMany(p Provider, constructor any, elem reflect.Type, opts ...dig.ProvideOption) error {
	opts = append(opts, dig.Group(GroupName(elem)))
	return p.Provide(constructor, opts...)
}

// ProvideManyKeyed provides constructor as a member of the Many group named
// key, matching Many dependencies on depmode.TypeKey{Type: elem, Key: key}.
func ProvideManyKeyed(p Provider, constructor any, key string, opts ...dig.ProvideOption) error {
	opts = append(opts, dig.Group(key))
	return p.Provide(constructor, opts...)
}

// Invoke wraps fn with deps (see Wrap) and invokes it on i.
func Invoke(i Invoker, fn any, deps []depmode.Dependency, opts ...dig.InvokeOption) error {
	wrapped, err := Wrap(fn, deps)
	if err != nil {
		return err
	}

	return i.Invoke(wrapped, opts...)
}

// GroupName returns the dig value group used for Many dependencies on t.
// Keyed Many dependencies use their key as the group name instead; see
// ProvideManyKeyed.
func GroupName(t reflect.Type) string {
	return strings.NewReplacer(",", ";", " ", "").Replace(t.String())
}

// Wrap returns a function equivalent to fn whose single parameter is a
// generated dig.In struct built from deps. deps must be index-aligned with
// fn's parameters, as produced by depmode.Normalize.
func Wrap(fn any, deps []depmode.Dependency) (any, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, SignatureError{Constructor: fmt.Sprintf("%T", fn), Index: -1, Cause: ErrNotFunction}
	}

	ft := fv.Type()
	name := funcName(fv)

	if ft.IsVariadic() {
		return nil, SignatureError{Constructor: name, Index: -1, Cause: ErrVariadic}
	}

	if ft.NumIn() != len(deps) {
		return nil, SignatureError{
			Constructor: name,
			Index:       -1,
			Cause:       fmt.Errorf("%w: %d parameters, %d dependencies", ErrParameterCount, ft.NumIn(), len(deps)),
		}
	}

	fields := make([]reflect.StructField, 0, len(deps)+1)
	fields = append(fields, reflect.StructField{Name: "In", Type: inType, Anonymous: true})

	many := make([]bool, len(deps))
	for i, dep := range deps {
		if dep.Index() != i {
			return nil, SignatureError{Constructor: name, Index: i, Cause: ErrIndexMismatch}
		}

		field, err := paramField(ft.In(i), dep)
		if err != nil {
			var unsupported UnsupportedConstraintError
			if errors.As(err, &unsupported) {
				return nil, unsupported
			}
			return nil, SignatureError{Constructor: name, Index: i, Cause: err}
		}

		many[i] = dep.IsMany()
		fields = append(fields, field)
	}

	paramType := reflect.StructOf(fields)

	outs := make([]reflect.Type, ft.NumOut())
	for i := range outs {
		outs[i] = ft.Out(i)
	}

	wrappedType := reflect.FuncOf([]reflect.Type{paramType}, outs, false)
	wrapped := reflect.MakeFunc(wrappedType, func(args []reflect.Value) []reflect.Value {
		params := args[0]
		in := make([]reflect.Value, len(deps))
		for i := range deps {
			v := params.Field(i + 1)
			if many[i] && v.IsNil() {
				v = reflect.MakeSlice(v.Type(), 0, 0)
			}
			in[i] = v
		}
		return fv.Call(in)
	})

	return wrapped.Interface(), nil
}

// paramField builds the dig.In field for one dependency.
func paramField(param reflect.Type, dep depmode.Dependency) (reflect.StructField, error) {
	m := dep.Mask()
	if m.Has(depmode.Self) || m.Has(depmode.SkipSelf) {
		return reflect.StructField{}, UnsupportedConstraintError{
			Index:      dep.Index(),
			Identifier: dep.Identifier(),
			Mask:       m,
		}
	}

	t, key, err := identifierType(dep.Identifier())
	if err != nil {
		return reflect.StructField{}, err
	}

	var tags []string
	fieldType := t

	if dep.IsMany() {
		fieldType = reflect.SliceOf(t)
		group := GroupName(t)
		if key != "" {
			group = key
		}
		tags = append(tags, `group:"`+group+`"`)
	} else {
		if key != "" {
			tags = append(tags, `name:"`+key+`"`)
		}
		if dep.IsOptional() {
			tags = append(tags, `optional:"true"`)
		}
	}

	if param != fieldType {
		return reflect.StructField{}, fmt.Errorf("%w: want %s, got %s", ErrTypeMismatch, fieldType, param)
	}

	return reflect.StructField{
		Name: "P" + strconv.Itoa(dep.Index()),
		Type: fieldType,
		Tag:  reflect.StructTag(strings.Join(tags, " ")),
	}, nil
}

func identifierType(id depmode.Identifier) (reflect.Type, string, error) {
	switch v := id.(type) {
	case reflect.Type:
		return v, "", nil
	case depmode.TypeKey:
		return v.Type, v.Key, nil
	default:
		return nil, "", fmt.Errorf("%w, got %T", ErrUnsupportedIdentifier, id)
	}
}

func funcName(fv reflect.Value) string {
	if f := runtime.FuncForPC(fv.Pointer()); f != nil {
		return f.Name()
	}
	return fv.Type().String()
}
