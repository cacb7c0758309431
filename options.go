package glcheck

import "log/slog"

// Option configures Open.
//
// Example:
//
//	gl, err := glcheck.Open(drv,
//	    glcheck.WithRestrictions(glcheck.StaticPolicy{Hidden: []string{"GL_EXT_texture_filter_anisotropic"}}),
//	    glcheck.WithLogger(logger),
//	)
type Option func(*options)

// options holds the configuration collected from Option values.
type options struct {
	policy RestrictionPolicy
	logger *slog.Logger
	trace  bool
}

// defaultOptions returns the options used when none are given.
func defaultOptions() options {
	return options{
		policy: DefaultPolicy(),
		logger: nil, // falls back to Logger()
	}
}

// WithRestrictions sets the policy that hides extensions and clamps the
// number of texture units. A nil policy restores DefaultPolicy.
func WithRestrictions(p RestrictionPolicy) Option {
	return func(o *options) {
		if p == nil {
			p = DefaultPolicy()
		}
		o.policy = p
	}
}

// WithLogger sets the logger for one facade, overriding SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTracing wraps the driver so that every native call is logged at
// debug level. Arguments are only formatted when debug is enabled.
func WithTracing() Option {
	return func(o *options) {
		o.trace = true
	}
}
