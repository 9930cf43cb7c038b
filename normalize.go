package depmode

// Normalize converts a service's authored dependency list into records
// index-aligned with its constructor parameters. Each entry may be a bare
// identifier, a Declaration, a Pair, or a two-element []any; see
// ParseDeclaration. The first malformed or conflicting entry aborts
// normalization and nothing is returned.
//
//	deps, err := depmode.Normalize(depmode.TypeOf[*UserService](),
//	    depmode.TypeOf[*sql.DB](),
//	    depmode.Pair{depmode.TypeOf[Logger](), depmode.Optional},
//	    depmode.Pair{depmode.TypeOf[Plugin](), depmode.Constraints{Many: true}},
//	)
func Normalize(service Identifier, entries ...any) ([]Dependency, error) {
	deps := make([]Dependency, 0, len(entries))
	for i, entry := range entries {
		decl, err := ParseDeclaration(entry)
		if err != nil {
			return nil, MalformedDeclarationError{
				Service: service,
				Index:   i,
				Entry:   entry,
				Cause:   err,
			}
		}

		dep, err := normalizeOne(service, i, decl)
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}

	return deps, nil
}

// NormalizeDeclarations is the typed form of Normalize.
func NormalizeDeclarations(service Identifier, decls ...Declaration) ([]Dependency, error) {
	deps := make([]Dependency, 0, len(decls))
	for i, decl := range decls {
		if decl == nil {
			return nil, MalformedDeclarationError{Service: service, Index: i, Cause: ErrIdentifierNil}
		}

		dep, err := normalizeOne(service, i, decl)
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}

	return deps, nil
}

func normalizeOne(service Identifier, index int, decl Declaration) (Dependency, error) {
	id := decl.Identifier()
	if err := checkIdentifier(id); err != nil {
		return Dependency{}, MalformedDeclarationError{
			Service: service,
			Index:   index,
			Entry:   decl,
			Cause:   err,
		}
	}

	m := decl.Mask()
	if err := ValidateMask(service, index, id, m); err != nil {
		return Dependency{}, err
	}

	return Dependency{index: index, id: id, mask: m}, nil
}
