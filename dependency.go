package depmode

import "fmt"

// Dependency is the normalized record for one constructor parameter. It is
// immutable once produced; containers may cache and share it freely.
type Dependency struct {
	index int
	id    Identifier
	mask  Mask
}

// NewDependency builds a record directly, validating the identifier and mask.
func NewDependency(index int, id Identifier, m Mask) (Dependency, error) {
	if err := checkIdentifier(id); err != nil {
		return Dependency{}, MalformedDeclarationError{Index: index, Entry: id, Cause: err}
	}

	if err := ValidateMask(nil, index, id, m); err != nil {
		return Dependency{}, err
	}

	return Dependency{index: index, id: id, mask: m}, nil
}

// Index is the constructor parameter position of this dependency.
func (d Dependency) Index() int { return d.index }

// Identifier is the service identifier to resolve.
func (d Dependency) Identifier() Identifier { return d.id }

// Mask is the validated constraint mask.
func (d Dependency) Mask() Mask { return d.mask }

// Constraints returns the mask in descriptor form.
func (d Dependency) Constraints() Constraints { return ConstraintsOf(d.mask) }

// IsOptional reports whether an unresolved identifier yields nil.
func (d Dependency) IsOptional() bool { return d.mask.Has(Optional) }

// IsMany reports whether every matching registration is collected.
func (d Dependency) IsMany() bool { return d.mask.Has(Many) }

// Lookup describes where and how a container should search for d.
func (d Dependency) Lookup() SearchPolicy {
	p := SearchPolicy{
		Origin:   CurrentContainer,
		Ascend:   true,
		Optional: d.IsOptional(),
		Many:     d.IsMany(),
	}

	switch {
	case d.mask.Has(Self):
		p.Ascend = false
	case d.mask.Has(SkipSelf):
		p.Origin = ParentContainer
	}

	return p
}

func (d Dependency) String() string {
	return fmt.Sprintf("#%d %s (%s)", d.index, FormatIdentifier(d.id), d.mask)
}

// Origin is the container a search starts from.
type Origin int

const (
	// CurrentContainer starts the search at the resolving container.
	CurrentContainer Origin = iota

	// ParentContainer starts the search at the resolving container's parent.
	ParentContainer
)

func (o Origin) String() string {
	switch o {
	case CurrentContainer:
		return "Current"
	case ParentContainer:
		return "Parent"
	default:
		return fmt.Sprintf("Unknown(%d)", int(o))
	}
}

// SearchPolicy is the container-facing reading of a mask.
type SearchPolicy struct {
	// Origin is where the search begins.
	Origin Origin

	// Ascend allows the search to continue into ancestors of Origin.
	Ascend bool

	// Optional substitutes nil for an unresolved identifier.
	Optional bool

	// Many collects all registrations into one ordered sequence.
	Many bool
}
