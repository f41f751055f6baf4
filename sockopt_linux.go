//go:build linux

package icesock

import "golang.org/x/sys/unix"

// setDontFragment requests path-MTU discovery so oversized datagrams
// surface as errors instead of being fragmented.
func setDontFragment(sock int) error {
	return unix.SetsockoptInt(sock, unix.IPPROTO_IP, unix.IP_MTU_DISCOVER, unix.IP_PMTUDISC_DO)
}
