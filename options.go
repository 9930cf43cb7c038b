package depmode

import "go.uber.org/zap"

// RegistryOption configures a Registry.
type RegistryOption interface {
	applyRegistryOption(*registryOptions)
}

type registryOptions struct {
	logger *zap.Logger
	strict bool
}

type registryOptionFunc func(*registryOptions)

func (f registryOptionFunc) applyRegistryOption(o *registryOptions) {
	f(o)
}

// WithLogger sets the logger used for registration events. A nil logger
// disables logging.
func WithLogger(logger *zap.Logger) RegistryOption {
	return registryOptionFunc(func(o *registryOptions) {
		o.logger = logger
	})
}

// WithStrictRegistration makes Register fail with AlreadyRegisteredError
// instead of replacing an existing registration.
func WithStrictRegistration(strict bool) RegistryOption {
	return registryOptionFunc(func(o *registryOptions) {
		o.strict = strict
	})
}

func newRegistryOptions(opts []RegistryOption) *registryOptions {
	options := &registryOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt.applyRegistryOption(options)
		}
	}

	if options.logger == nil {
		options.logger = zap.NewNop()
	}

	return options
}
