// Package icesock provides the network-facing primitives a NAT-traversal
// agent needs before any protocol logic runs: non-blocking UDP socket
// creation with port-range conflict retry, and discovery of the local
// addresses eligible to be advertised as host candidates per RFC 8445,
// including the IPv6 privacy-address policy of RFC 4941/7721.
//
// # Getting Started
//
// Create a Stack once per process, then create sockets and gather
// candidate addresses for them:
//
//	stack := icesock.NewStack()
//
//	sock, err := stack.CreateSocket(icesock.SocketConfig{
//	    PortBegin: 50000,
//	    PortEnd:   50100,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sock.Close()
//
//	records := make([]icesock.AddressRecord, 16)
//	n, err := stack.GetAddrs(sock, records)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if n > len(records) {
//	    // More candidates exist than fit; grow the buffer and retry.
//	    records = make([]icesock.AddressRecord, n)
//	    n, err = stack.GetAddrs(sock, records)
//	}
//
// # Core Types
//
//   - [Stack]: process-wide context owning the port allocator, the
//     interface lister and the logger
//   - [SocketConfig]: bind port range; both fields zero means any
//     ephemeral port
//   - [Socket]: a bound, non-blocking UDP socket owned by the caller
//   - [AddressRecord]: one candidate transport address stamped with the
//     socket's bound port
//   - [InterfaceLister]: pluggable interface-enumeration strategy
//
// # Scope
//
// This package performs no socket I/O beyond creation, binding and
// address discovery. Reachability testing, candidate prioritization and
// ICE/STUN/TURN negotiation belong to higher layers.
package icesock
