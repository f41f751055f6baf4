package icesock

import (
	"errors"
	"fmt"
)

// Sentinel errors for socket creation and address gathering. Callers
// match them through wrapping with errors.Is.
var (
	// ErrAddressResolution indicates no usable local address family was found
	ErrAddressResolution = errors.New("no usable local address family")

	// ErrSocketCreate indicates the UDP socket could not be created
	ErrSocketCreate = errors.New("socket creation failed")

	// ErrNonBlocking indicates the socket could not be switched to non-blocking mode
	ErrNonBlocking = errors.New("setting non-blocking mode failed")

	// ErrBind indicates binding failed, or every port in the configured range was in use
	ErrBind = errors.New("socket binding failed")

	// ErrPortQuery indicates the OS could not report the socket's bound address
	ErrPortQuery = errors.New("bound port query failed")

	// ErrEnumeration indicates the interface/address listing facility itself failed
	ErrEnumeration = errors.New("interface enumeration failed")
)

// NetError carries the operation and address context of a failure.
type NetError struct {
	Op   string // operation that caused the error
	Addr string // address if relevant
	Err  error  // underlying error
}

func (e *NetError) Error() string {
	if e.Addr != "" {
		return fmt.Sprintf("icesock %s %s: %v", e.Op, e.Addr, e.Err)
	}
	return fmt.Sprintf("icesock %s: %v", e.Op, e.Err)
}

func (e *NetError) Unwrap() error {
	return e.Err
}

// newNetError creates a new NetError
func newNetError(op, addr string, err error) *NetError {
	return &NetError{
		Op:   op,
		Addr: addr,
		Err:  err,
	}
}
