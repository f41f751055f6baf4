//go:build !linux && !darwin

package icesock

import "github.com/sirupsen/logrus"

// configureSocket is a no-op on platforms without the unix socket-option
// surface. The Go runtime keeps sockets non-blocking on every platform,
// so the non-blocking contract still holds.
func configureSocket(log *logrus.Logger, network string, fd uintptr, pmtuDiscovery bool) error {
	log.WithFields(logrus.Fields{
		"function": "configureSocket",
		"network":  network,
	}).Debug("Socket options not supported on this platform")
	return nil
}
