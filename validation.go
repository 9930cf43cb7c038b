package depmode

// Validate reports ErrConflictingConstraints or ErrMaskOutOfRange for m.
func (m Mask) Validate() error {
	if !m.InRange() {
		return MaskError{Value: m.String(), Cause: ErrMaskOutOfRange}
	}

	if m.Has(Self) && m.Has(SkipSelf) {
		return ConflictingConstraintError{Index: -1, Mask: m}
	}

	return nil
}

// ValidateMask checks a mask for the dependency at index of service. The
// error names the service and dependency identifier when they are known.
func ValidateMask(service Identifier, index int, id Identifier, m Mask) error {
	if !m.InRange() {
		return MalformedDeclarationError{
			Service: service,
			Index:   index,
			Entry:   id,
			Cause:   MaskError{Value: m.String(), Cause: ErrMaskOutOfRange},
		}
	}

	if m&Self != 0 && m&SkipSelf != 0 {
		return ConflictingConstraintError{
			Service:    service,
			Index:      index,
			Identifier: id,
			Mask:       m,
		}
	}

	return nil
}
