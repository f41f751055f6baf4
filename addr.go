package icesock

import (
	"bytes"
	"fmt"
	"net"
)

// AddressRecord represents one socket address suitable for re-binding or
// advertisement as a host candidate. IPv4 addresses are stored in their
// native 4-byte form; IPv4-mapped IPv6 addresses are unmapped on
// acceptance.
type AddressRecord struct {
	IP   net.IP
	Port uint16
}

// IsIPv4 reports whether the record holds an IPv4 address.
func (r AddressRecord) IsIPv4() bool {
	return r.IP.To4() != nil
}

// UDPAddr converts the record to a *net.UDPAddr.
func (r AddressRecord) UDPAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: r.IP, Port: int(r.Port)}
}

func (r AddressRecord) String() string {
	return fmt.Sprintf("%s:%d", formatHost(r.IP), r.Port)
}

// formatHost brackets IPv6 hosts the way net.JoinHostPort does.
func formatHost(ip net.IP) string {
	if ip.To4() == nil && ip.To16() != nil {
		return "[" + ip.String() + "]"
	}
	return ip.String()
}

// isLocalAddress classifies addresses that RFC 8445 5.1.1.1 excludes
// from host candidates: loopback, link-local and unspecified.
func isLocalAddress(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified()
}

// isTemporaryIPv6 reports whether ip looks like an RFC 4941 temporary
// (privacy) address. The OS temporary flag is not portably visible, so
// this classifies any global-unicast IPv6 address whose interface
// identifier is not EUI-64 formed (no 0xff,0xfe marker in the middle of
// the IID) as temporary. Stable-privacy addresses (RFC 7217) are
// classified as temporary too, which errs toward suppressing trackable
// addresses.
func isTemporaryIPv6(ip net.IP) bool {
	if ip.To4() != nil {
		return false
	}
	v6 := ip.To16()
	if v6 == nil || !ip.IsGlobalUnicast() {
		return false
	}
	return !(v6[11] == 0xff && v6[12] == 0xfe)
}

// normalizeIP unmaps IPv4-mapped IPv6 addresses back to plain IPv4 and
// returns nil for anything that is not IPv4 or IPv6.
func normalizeIP(ip net.IP) net.IP {
	if v4 := ip.To4(); v4 != nil {
		return v4
	}
	if v6 := ip.To16(); v6 != nil {
		return v6
	}
	return nil
}

// hasDuplicateAddr checks ip against already-accepted records. IPv4 is a
// duplicate only on a full byte-for-byte match. IPv6 is a duplicate when
// the first 64 bits (the network prefix) already appear in an accepted
// IPv6 record, so interface aliases of the same subnet collapse to one
// candidate.
func hasDuplicateAddr(records []AddressRecord, ip net.IP) bool {
	if v4 := ip.To4(); v4 != nil {
		for _, r := range records {
			if r4 := r.IP.To4(); r4 != nil && bytes.Equal(r4, v4) {
				return true
			}
		}
		return false
	}

	v6 := ip.To16()
	for _, r := range records {
		if r.IP.To4() != nil {
			continue
		}
		if r6 := r.IP.To16(); r6 != nil && bytes.Equal(r6[:8], v6[:8]) {
			return true
		}
	}
	return false
}
