// Package depmode describes how a dependency injection container should
// locate each constructor parameter of a service: which container in a
// parent/child hierarchy to search, whether absence is acceptable, and
// whether to collect every matching registration.
//
// # Constraint Flags
//
// Four independent bits are combined with the | operator into a Mask:
//
//   - Self: search only the current container
//   - SkipSelf: begin the search at the parent container
//   - Optional: inject nil when the identifier is not found
//   - Many: inject every registration as one ordered slice
//
// Self and SkipSelf are mutually exclusive.
//
// # Declaring Dependencies
//
// A dependency slot is a bare identifier, an identifier with a raw mask, or
// an identifier with a Constraints descriptor:
//
//	depmode.Dep(depmode.TypeOf[*sql.DB]())
//	depmode.DepMask(depmode.TypeOf[Logger](), depmode.Optional|depmode.Self)
//	depmode.DepWith(depmode.TypeOf[Plugin](), depmode.Constraints{Many: true})
//
// Lists built at runtime may mix bare identifiers, Pair values and
// two-element []any slices; ParseDeclaration sorts them into the typed shapes.
//
// # Normalization
//
// Normalize turns a declaration list into []Dependency records, index-aligned
// with the constructor's parameters. Every entry is validated eagerly:
//
//	deps, err := depmode.Normalize(depmode.TypeOf[*UserService](),
//	    depmode.TypeOf[*sql.DB](),
//	    depmode.Pair{depmode.TypeOf[Logger](), depmode.Optional},
//	)
//	if depmode.IsConflictingConstraint(err) {
//	    // Self and SkipSelf on the same dependency
//	}
//
// A Registry stores normalized lists per service and refuses services whose
// declarations fail; a Manifest loads declaration lists from YAML or JSON.
//
// # Error Handling
//
//   - MalformedDeclarationError: an entry could not be interpreted
//   - ConflictingConstraintError: Self and SkipSelf set together
//   - RegistrationError: a service was rejected by a Registry
//   - ManifestError: a manifest could not be decoded or applied
//
// # Thread Safety
//
// Dependency records are immutable. Registry is safe for concurrent use.
package depmode
