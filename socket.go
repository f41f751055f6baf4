package icesock

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync/atomic"
	"syscall"

	"github.com/sirupsen/logrus"
)

// SocketConfig selects the bind port range for CreateSocket. Both fields
// zero means bind to any ephemeral port. A non-zero range is probed with
// PortEnd-PortBegin retries when ports are already in use.
type SocketConfig struct {
	PortBegin uint16
	PortEnd   uint16
}

// Socket is a bound, non-blocking UDP socket. The caller owns it and is
// responsible for closing it.
type Socket struct {
	conn *net.UDPConn
	log  *logrus.Logger

	// closed is set on Close; the net package keeps returning the cached
	// local address afterwards, so bound-port queries must check it.
	closed atomic.Bool
}

// CreateSocket resolves a local wildcard bind address (preferring IPv6
// with dual-stack enabled, falling back to IPv4), creates a non-blocking
// UDP socket with best-effort options applied, and binds it according to
// cfg. Socket options other than non-blocking mode are best-effort:
// failures are logged and ignored.
func (s *Stack) CreateSocket(cfg SocketConfig) (*Socket, error) {
	families := []struct {
		network string
		host    string
	}{
		{"udp6", "::"},
		{"udp4", "0.0.0.0"},
	}

	var lastErr error
	for _, family := range families {
		conn, err := s.bindSocket(family.network, family.host, cfg)
		if err == nil {
			s.log.WithFields(logrus.Fields{
				"function":   "Stack.CreateSocket",
				"network":    family.network,
				"local_addr": conn.LocalAddr().String(),
			}).Debug("UDP socket created")
			return &Socket{conn: conn, log: s.log}, nil
		}
		if isFamilyUnsupported(err) {
			lastErr = err
			continue
		}
		return nil, err
	}

	err := newNetError("create", "", fmt.Errorf("%w: %w", ErrAddressResolution, lastErr))
	s.log.WithFields(logrus.Fields{
		"function": "Stack.CreateSocket",
		"error":    err.Error(),
	}).Error("No usable address family for binding")
	return nil, err
}

// bindSocket runs the bind algorithm for one address family: a single
// attempt for the ephemeral configuration, otherwise the port-range
// retry loop. Only "address already in use" is retried; any other error
// aborts immediately.
func (s *Stack) bindSocket(network, host string, cfg SocketConfig) (*net.UDPConn, error) {
	lc := &net.ListenConfig{Control: s.controlSocket}

	if cfg.PortBegin == 0 && cfg.PortEnd == 0 {
		conn, err := s.listenPacket(lc, network, host, 0)
		if err != nil {
			return nil, s.bindFailed(network, cfg, err)
		}
		return conn, nil
	}

	retries := int(cfg.PortEnd) - int(cfg.PortBegin)
	if retries < 0 {
		// Inverted range degenerates to a single attempt.
		retries = 0
	}
	for {
		port := s.ports.nextPort(cfg.PortBegin, cfg.PortEnd)
		conn, err := s.listenPacket(lc, network, host, port)
		if err == nil {
			s.log.WithFields(logrus.Fields{
				"function": "Stack.CreateSocket",
				"port":     port,
			}).Debug("UDP socket bound to port")
			return conn, nil
		}
		if errors.Is(err, syscall.EADDRINUSE) && retries > 0 {
			retries--
			continue
		}
		return nil, s.bindFailed(network, cfg, err)
	}
}

// listenPacket creates and binds one UDP socket at the given port, with
// the Stack's control function applying socket options before bind.
func (s *Stack) listenPacket(lc *net.ListenConfig, network, host string, port uint16) (*net.UDPConn, error) {
	address := net.JoinHostPort(host, strconv.Itoa(int(port)))
	pc, err := lc.ListenPacket(context.Background(), network, address)
	if err != nil {
		return nil, err
	}
	return pc.(*net.UDPConn), nil
}

// controlSocket is the net.ListenConfig control hook. It applies the
// platform socket options to the raw descriptor before bind; only a
// non-blocking mode failure is propagated as fatal.
func (s *Stack) controlSocket(network, address string, c syscall.RawConn) error {
	var optErr error
	if err := c.Control(func(fd uintptr) {
		optErr = configureSocket(s.log, network, fd, s.opts.PMTUDiscovery)
	}); err != nil {
		return err
	}
	return optErr
}

// bindFailed classifies a ListenPacket failure into the error taxonomy,
// logs it, and attaches the attempted range for explicit configurations.
func (s *Stack) bindFailed(network string, cfg SocketConfig, err error) error {
	var classified error
	switch {
	case errors.Is(err, ErrNonBlocking):
		classified = err
	case errors.Is(err, syscall.EAFNOSUPPORT),
		errors.Is(err, syscall.EPROTONOSUPPORT),
		errors.Is(err, syscall.EMFILE),
		errors.Is(err, syscall.ENFILE):
		classified = fmt.Errorf("%w: %w", ErrSocketCreate, err)
	default:
		if cfg.PortBegin != 0 || cfg.PortEnd != 0 {
			classified = fmt.Errorf("%w on port range [%d, %d]: %w", ErrBind, cfg.PortBegin, cfg.PortEnd, err)
		} else {
			classified = fmt.Errorf("%w: %w", ErrBind, err)
		}
	}

	wrapped := newNetError("bind", network, classified)
	if !isFamilyUnsupported(wrapped) {
		s.log.WithFields(logrus.Fields{
			"function": "Stack.CreateSocket",
			"network":  network,
			"error":    wrapped.Error(),
		}).Error("UDP socket binding failed")
	}
	return wrapped
}

// isFamilyUnsupported reports whether the error means the address family
// itself is unavailable, so the next family should be tried.
func isFamilyUnsupported(err error) bool {
	return errors.Is(err, syscall.EAFNOSUPPORT) ||
		errors.Is(err, syscall.EPROTONOSUPPORT) ||
		errors.Is(err, syscall.EADDRNOTAVAIL)
}

// Port returns the socket's bound local port, or 0 when the OS cannot
// report it.
func (s *Socket) Port() uint16 {
	addr, ok := s.localUDPAddr()
	if !ok {
		s.log.WithFields(logrus.Fields{
			"function": "Socket.Port",
		}).Warn("Querying bound address failed")
		return 0
	}
	return uint16(addr.Port)
}

// LocalAddr returns the bound address rewritten to its loopback
// equivalent (127.0.0.1 or ::1), for callers that need a same-host
// reachable address for local testing.
func (s *Socket) LocalAddr() (AddressRecord, error) {
	addr, ok := s.localUDPAddr()
	if !ok {
		err := newNetError("localaddr", "", ErrPortQuery)
		s.log.WithFields(logrus.Fields{
			"function": "Socket.LocalAddr",
			"error":    err.Error(),
		}).Warn("Querying bound address failed")
		return AddressRecord{}, err
	}

	record := AddressRecord{Port: uint16(addr.Port)}
	if addr.IP.To4() != nil {
		record.IP = net.IPv4(127, 0, 0, 1).To4()
	} else {
		record.IP = net.IPv6loopback
	}
	return record, nil
}

// localUDPAddr queries the bound address, reporting failure once the
// socket is closed.
func (s *Socket) localUDPAddr() (*net.UDPAddr, bool) {
	if s.closed.Load() {
		return nil, false
	}
	addr, ok := s.conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr == nil {
		return nil, false
	}
	return addr, true
}

// Conn exposes the underlying connection for layers that perform I/O.
func (s *Socket) Conn() *net.UDPConn {
	return s.conn
}

// Close releases the socket.
func (s *Socket) Close() error {
	s.closed.Store(true)
	return s.conn.Close()
}
