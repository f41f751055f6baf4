//go:build darwin

package icesock

import "golang.org/x/sys/unix"

// setDontFragment sets the DF flag directly; macOS has no per-socket
// path-MTU discovery mode.
func setDontFragment(sock int) error {
	return unix.SetsockoptInt(sock, unix.IPPROTO_IP, unix.IP_DONTFRAG, 1)
}
