// Package digadapter wires normalized depmode dependency lists into a
// go.uber.org/dig container.
//
// A constructor's parameters are described by a []depmode.Dependency. The
// adapter wraps the constructor in a function taking a generated dig.In
// parameter object whose fields carry the matching dig tags:
//
//   - Optional becomes `optional:"true"`; an absent value is the zero value
//   - Many becomes `group:"<name>"` on a slice field; no members yields an empty slice
//   - a depmode.TypeKey identifier becomes `name:"<key>"`
//
// dig has no way to restrict a lookup to the current scope or to start at the
// parent scope, so Self and SkipSelf are rejected with UnsupportedConstraintError.
//
//	deps, err := depmode.Normalize(depmode.TypeOf[*Service](),
//	    depmode.TypeOf[*Database](),
//	    depmode.Pair{depmode.TypeOf[Logger](), depmode.Optional},
//	    depmode.Pair{depmode.TypeOf[Plugin](), depmode.Many},
//	)
//	if err != nil {
//	    return err
//	}
//
//	c := dig.New()
//	err = digadapter.Provide(c, NewService, deps)
package digadapter
