package icesock

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStackDefaults(t *testing.T) {
	stack := NewStack()

	require.NotNil(t, stack)
	assert.NotNil(t, stack.log)
	assert.NotNil(t, stack.ports)
	assert.IsType(t, &NativeLister{}, stack.lister)
	assert.True(t, stack.opts.PMTUDiscovery)
	assert.False(t, stack.opts.LocalhostCandidates)
	assert.Equal(t, logrus.WarnLevel, stack.log.GetLevel())
}

func TestNewStackOverrides(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	lister := &fakeLister{}

	stack := NewStack(
		WithLogger(logger),
		WithInterfaceLister(lister),
		WithLocalhostCandidates(true),
		WithPMTUDiscovery(false),
	)

	assert.Same(t, logger, stack.log)
	assert.Same(t, lister, stack.lister)
	assert.True(t, stack.opts.LocalhostCandidates)
	assert.False(t, stack.opts.PMTUDiscovery)
}

func TestStacksAreIsolated(t *testing.T) {
	// Each stack owns its own port counter; allocation in one must not
	// disturb the other beyond OS-level port availability.
	a := newTestStack()
	b := newTestStack()

	sockA, err := a.CreateSocket(SocketConfig{})
	require.NoError(t, err)
	defer sockA.Close()

	sockB, err := b.CreateSocket(SocketConfig{})
	require.NoError(t, err)
	defer sockB.Close()

	assert.NotEqual(t, sockA.Port(), sockB.Port())
}
