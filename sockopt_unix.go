//go:build linux || darwin

package icesock

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// socketBufferSize is the send/receive buffer size requested on created
// sockets. 2 MiB keeps bursts of candidate-check traffic from dropping;
// the kernel may clamp it.
const socketBufferSize = 2 * 1024 * 1024

// configureSocket applies the socket options to a freshly created
// descriptor, before bind. Every option except non-blocking mode is
// best-effort: failures are logged at Warn and ignored. A non-blocking
// mode failure is returned wrapped in ErrNonBlocking, since the rest of
// the system assumes non-blocking semantics.
func configureSocket(log *logrus.Logger, network string, fd uintptr, pmtuDiscovery bool) error {
	sock := int(fd)

	if err := unix.SetsockoptInt(sock, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		warnSocketOption(log, "SO_REUSEADDR", err)
	}

	if strings.HasSuffix(network, "6") {
		// Accept IPv4-mapped traffic on the IPv6 wildcard socket.
		if err := unix.SetsockoptInt(sock, unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, 0); err != nil {
			warnSocketOption(log, "IPV6_V6ONLY", err)
		}
	}

	if pmtuDiscovery {
		if err := setDontFragment(sock); err != nil {
			warnSocketOption(log, "don't-fragment", err)
		}
	}

	if err := unix.SetsockoptInt(sock, unix.SOL_SOCKET, unix.SO_RCVBUF, socketBufferSize); err != nil {
		warnSocketOption(log, "SO_RCVBUF", err)
	}
	if err := unix.SetsockoptInt(sock, unix.SOL_SOCKET, unix.SO_SNDBUF, socketBufferSize); err != nil {
		warnSocketOption(log, "SO_SNDBUF", err)
	}

	if err := unix.SetNonblock(sock, true); err != nil {
		return fmt.Errorf("%w: %w", ErrNonBlocking, err)
	}
	return nil
}

// warnSocketOption records a best-effort option failure.
func warnSocketOption(log *logrus.Logger, option string, err error) {
	log.WithFields(logrus.Fields{
		"function": "configureSocket",
		"option":   option,
		"error":    err.Error(),
	}).Warn("Setting socket option failed")
}
