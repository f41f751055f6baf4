package icesock

import (
	"fmt"
	"net"

	"github.com/sirupsen/logrus"
)

// GetAddrs discovers the local addresses eligible to be advertised as
// host candidates for sock, writes up to len(out) records into out, and
// returns the total number of eligible candidates found. The total may
// exceed len(out); callers detecting truncation can grow the buffer and
// call again. Records carry the socket's bound port.
//
// Per RFC 8445 5.1.1.1, loopback addresses are never included (unless
// the Stack was built with WithLocalhostCandidates for testing), and
// once any RFC 4941 temporary IPv6 address is present on an up,
// non-loopback interface, every non-temporary IPv6 address is
// suppressed so a stable, trackable identity does not leak alongside
// the private one. Emitted IPv6 records are deduplicated on their /64
// prefix, IPv4 records on the full address.
func (s *Stack) GetAddrs(sock *Socket, out []AddressRecord) (int, error) {
	port := sock.Port()
	if port == 0 {
		err := newNetError("gather", "", ErrPortQuery)
		s.log.WithFields(logrus.Fields{
			"function": "Stack.GetAddrs",
			"error":    err.Error(),
		}).Error("Getting UDP port failed")
		return 0, err
	}

	// accepted holds every eligible record for deduplication; out is
	// only filled while capacity permits.
	var accepted []AddressRecord
	emit := func(ip net.IP) {
		record := AddressRecord{IP: ip, Port: port}
		if len(accepted) < len(out) {
			out[len(accepted)] = record
		}
		accepted = append(accepted, record)
	}

	if s.opts.LocalhostCandidates {
		emit(net.IPv6loopback)
		emit(net.IPv4(127, 0, 0, 1).To4())
	}

	addrs, err := s.lister.ListAddresses()
	if err != nil {
		wrapped := newNetError("gather", "", fmt.Errorf("%w: %w", ErrEnumeration, err))
		s.log.WithFields(logrus.Fields{
			"function": "Stack.GetAddrs",
			"error":    wrapped.Error(),
		}).Error("Interface enumeration failed")
		return 0, wrapped
	}

	// First pass: decide the privacy policy over the whole eligible set
	// before filtering individual addresses, because it governs
	// inclusion of every IPv6 address regardless of enumeration order.
	hasTemporary := false
	for _, addr := range addrs {
		if !addr.Up || addr.Loopback {
			continue
		}
		if addr.Temporary {
			hasTemporary = true
			break
		}
	}

	for _, addr := range addrs {
		if !addr.Up || addr.Loopback {
			continue
		}
		ip := normalizeIP(addr.IP)
		if ip == nil {
			continue
		}
		if isLocalAddress(ip) {
			continue
		}
		if hasTemporary && ip.To4() == nil && !addr.Temporary {
			continue
		}
		if hasDuplicateAddr(accepted, ip) {
			continue
		}
		emit(ip)
	}

	s.log.WithFields(logrus.Fields{
		"function": "Stack.GetAddrs",
		"port":     port,
		"found":    len(accepted),
		"written":  min(len(accepted), len(out)),
	}).Debug("Host candidate addresses gathered")
	return len(accepted), nil
}
