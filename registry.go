package depmode

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registration is an accepted service together with its normalized
// dependency list.
type Registration struct {
	// ID uniquely identifies this registration, including replacements of
	// the same service.
	ID uuid.UUID

	// Service is the registered identifier.
	Service Identifier

	deps []Dependency
}

// Dependencies returns a copy of the normalized dependency list.
func (r *Registration) Dependencies() []Dependency {
	out := make([]Dependency, len(r.deps))
	copy(out, r.deps)
	return out
}

// Len returns the number of dependencies.
func (r *Registration) Len() int {
	return len(r.deps)
}

// Registry accepts service declarations and stores their normalized
// dependency lists for a container core to consume. Declarations are
// validated eagerly: a service with a malformed or conflicting entry is
// never stored.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	// registrations by service identifier
	registrations map[Identifier]*Registration

	// order keeps first-registration order for Registrations
	order []Identifier

	logger *zap.Logger
	strict bool
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	options := newRegistryOptions(opts)

	return &Registry{
		registrations: make(map[Identifier]*Registration),
		logger:        options.logger,
		strict:        options.strict,
	}
}

// Register normalizes entries (see Normalize) and stores the result under
// service. Errors are wrapped in RegistrationError.
func (r *Registry) Register(service Identifier, entries ...any) (*Registration, error) {
	if err := checkIdentifier(service); err != nil {
		return nil, RegistrationError{Service: service, Cause: serviceError(err)}
	}

	deps, err := Normalize(service, entries...)
	if err != nil {
		r.logger.Warn("rejected service declaration",
			zap.String("service", FormatIdentifier(service)),
			zap.Error(err),
		)
		return nil, RegistrationError{Service: service, Cause: err}
	}

	return r.store(service, deps)
}

// RegisterDeclarations is the typed form of Register.
func (r *Registry) RegisterDeclarations(service Identifier, decls ...Declaration) (*Registration, error) {
	if err := checkIdentifier(service); err != nil {
		return nil, RegistrationError{Service: service, Cause: serviceError(err)}
	}

	deps, err := NormalizeDeclarations(service, decls...)
	if err != nil {
		r.logger.Warn("rejected service declaration",
			zap.String("service", FormatIdentifier(service)),
			zap.Error(err),
		)
		return nil, RegistrationError{Service: service, Cause: err}
	}

	return r.store(service, deps)
}

// serviceError maps identifier errors to their registry counterpart.
func serviceError(err error) error {
	if err == ErrIdentifierNil {
		return ErrServiceNil
	}
	return err
}

func (r *Registry) store(service Identifier, deps []Dependency) (*Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.registrations[service]
	if exists && r.strict {
		return nil, RegistrationError{Service: service, Cause: AlreadyRegisteredError{Service: service}}
	}

	reg := &Registration{
		ID:      uuid.New(),
		Service: service,
		deps:    deps,
	}

	r.registrations[service] = reg
	if !exists {
		r.order = append(r.order, service)
	}

	r.logger.Debug("registered service",
		zap.String("service", FormatIdentifier(service)),
		zap.Stringer("id", reg.ID),
		zap.Int("dependencies", len(deps)),
		zap.Bool("replaced", exists),
	)

	return reg, nil
}

// Lookup returns the registration for service.
func (r *Registry) Lookup(service Identifier) (*Registration, bool) {
	if checkIdentifier(service) != nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.registrations[service]
	return reg, ok
}

// Dependencies returns a copy of the normalized dependencies of service.
func (r *Registry) Dependencies(service Identifier) ([]Dependency, bool) {
	reg, ok := r.Lookup(service)
	if !ok {
		return nil, false
	}

	return reg.Dependencies(), true
}

// Contains reports whether service is registered.
func (r *Registry) Contains(service Identifier) bool {
	_, ok := r.Lookup(service)
	return ok
}

// Remove deletes the registration for service. It reports whether one existed.
func (r *Registry) Remove(service Identifier) bool {
	if checkIdentifier(service) != nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.registrations[service]; !ok {
		return false
	}

	delete(r.registrations, service)
	for i, s := range r.order {
		if s == service {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.logger.Debug("removed service", zap.String("service", FormatIdentifier(service)))
	return true
}

// Registrations returns all registrations in first-registration order.
func (r *Registry) Registrations() []*Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Registration, 0, len(r.order))
	for _, s := range r.order {
		out = append(out, r.registrations[s])
	}

	return out
}

// Count returns the number of registered services.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.registrations)
}
