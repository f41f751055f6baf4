package icesock

import (
	"github.com/sirupsen/logrus"
)

// Stack is the process-wide context for socket creation and candidate
// gathering. It owns the port allocator, the interface-enumeration
// strategy and the logger, so no package-level mutable state exists and
// isolated stacks can coexist in tests.
//
// A Stack is safe for concurrent use from multiple goroutines.
type Stack struct {
	ports  *portAllocator
	lister InterfaceLister
	log    *logrus.Logger
	opts   Options
}

// NewStack creates a Stack with the given option overrides. The port
// counter is seeded here, once, for the lifetime of the Stack.
func NewStack(opts ...Option) *Stack {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	return &Stack{
		ports:  newPortAllocator(),
		lister: options.Lister,
		log:    options.Logger,
		opts:   *options,
	}
}
