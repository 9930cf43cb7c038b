package depmode

// Constraints is the structured alternative to a raw Mask. Omitted fields
// default to false and contribute nothing to the mask.
//
//	depmode.DepWith(TypeOf[Logger](), depmode.Constraints{Optional: true})
type Constraints struct {
	// Self restricts the search to the current container.
	Self bool `json:"self,omitempty" yaml:"self,omitempty"`

	// SkipSelf starts the search at the parent container.
	SkipSelf bool `json:"skipSelf,omitempty" yaml:"skipSelf,omitempty"`

	// Optional yields nil instead of failing when unresolved.
	Optional bool `json:"optional,omitempty" yaml:"optional,omitempty"`

	// Many collects every matching registration into one argument.
	Many bool `json:"many,omitempty" yaml:"many,omitempty"`
}

// Mask converts the descriptor into the equivalent bitmask.
func (c Constraints) Mask() Mask {
	var m Mask
	if c.Self {
		m |= Self
	}
	if c.SkipSelf {
		m |= SkipSelf
	}
	if c.Optional {
		m |= Optional
	}
	if c.Many {
		m |= Many
	}
	return m
}

// ConstraintsOf is the inverse of Constraints.Mask: each field is true iff
// its bit is set in m. Bits outside the four flags are dropped.
func ConstraintsOf(m Mask) Constraints {
	return Constraints{
		Self:     m.Has(Self),
		SkipSelf: m.Has(SkipSelf),
		Optional: m.Has(Optional),
		Many:     m.Has(Many),
	}
}

// Options carries a mask under a named field, for declarations that group
// dependency settings in an options object instead of a bare mask.
type Options struct {
	Mode Mask `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// Mask returns the configured mode.
func (o Options) Mask() Mask {
	return o.Mode
}
