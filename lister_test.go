package icesock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeListerReturnsWellFormedAddresses(t *testing.T) {
	addrs, err := (&NativeLister{}).ListAddresses()
	require.NoError(t, err)

	for _, addr := range addrs {
		assert.NotNil(t, addr.IP)
		if addr.Temporary {
			assert.Nil(t, addr.IP.To4(), "IPv4 address %s marked temporary", addr.IP)
		}
	}
}

func TestNativeListerReportsLoopback(t *testing.T) {
	addrs, err := (&NativeLister{}).ListAddresses()
	require.NoError(t, err)

	// Every machine running the tests has a loopback interface.
	found := false
	for _, addr := range addrs {
		if addr.Loopback && addr.IP.IsLoopback() {
			found = true
			break
		}
	}
	assert.True(t, found, "no loopback interface address reported")
}

func TestHostnameListerReturnsWellFormedAddresses(t *testing.T) {
	addrs, err := (&HostnameLister{}).ListAddresses()
	require.NoError(t, err)

	for _, addr := range addrs {
		assert.NotNil(t, addr.IP)
		assert.True(t, addr.Up)
	}
}

func TestHostnameListerAsGatherBackend(t *testing.T) {
	// The fallback strategy must flow through the same policy passes;
	// no loopback or link-local address may survive them.
	stack, sock := newGatherFixture(t, &HostnameLister{})

	records := make([]AddressRecord, 16)
	n, err := stack.GetAddrs(sock, records)
	require.NoError(t, err)

	written := n
	if written > len(records) {
		written = len(records)
	}
	for _, record := range records[:written] {
		assert.False(t, record.IP.IsLoopback())
		assert.False(t, record.IP.IsLinkLocalUnicast())
		assert.Equal(t, sock.Port(), record.Port)
	}
}
