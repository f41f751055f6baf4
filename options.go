package icesock

import (
	"github.com/sirupsen/logrus"
)

// Options configures a Stack. Use the With* functions to override the
// defaults when calling NewStack.
type Options struct {
	// Logger receives diagnostics from all operations. No behavior
	// depends on it.
	Logger *logrus.Logger

	// LocalhostCandidates synthesizes IPv4 and IPv6 loopback records at
	// the socket's bound port before real interfaces are scanned. Test
	// use only; loopback addresses must never be advertised otherwise.
	LocalhostCandidates bool

	// PMTUDiscovery requests "do not fragment" behavior on created
	// sockets where the platform supports it. Enabled by default.
	PMTUDiscovery bool

	// Lister enumerates local interface addresses. Defaults to the
	// native OS facility; replace it to select the hostname-resolution
	// fallback or to inject a fake in tests.
	Lister InterfaceLister
}

// Option overrides one field of the default Options.
type Option func(*Options)

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *logrus.Logger) Option {
	return func(o *Options) {
		o.Logger = log
	}
}

// WithLocalhostCandidates toggles synthetic loopback candidates for
// local testing.
func WithLocalhostCandidates(enabled bool) Option {
	return func(o *Options) {
		o.LocalhostCandidates = enabled
	}
}

// WithPMTUDiscovery toggles the path-MTU-discovery socket option on
// created sockets.
func WithPMTUDiscovery(enabled bool) Option {
	return func(o *Options) {
		o.PMTUDiscovery = enabled
	}
}

// WithInterfaceLister selects the interface-enumeration strategy.
func WithInterfaceLister(lister InterfaceLister) Option {
	return func(o *Options) {
		o.Lister = lister
	}
}

// defaultOptions returns the Options used when no overrides are given.
func defaultOptions() *Options {
	return &Options{
		Logger:        newDefaultLogger(),
		PMTUDiscovery: true,
		Lister:        &NativeLister{},
	}
}

// newDefaultLogger builds the logger used when the caller does not
// supply one: warnings and errors only, colored text output with
// HH:MM:SS timestamps.
func newDefaultLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	return log
}
