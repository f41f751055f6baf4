package icesock

import (
	"net"
	"os"

	"github.com/wlynxg/anet"
)

// InterfaceAddress is one address reported by an InterfaceLister,
// annotated with the interface state the candidate policy needs.
type InterfaceAddress struct {
	IP net.IP

	// Up is false when the owning interface is administratively down.
	Up bool

	// Loopback marks addresses on a loopback interface.
	Loopback bool

	// Temporary marks RFC 4941 privacy addresses. Always false for IPv4.
	Temporary bool
}

// InterfaceLister enumerates the local interface addresses considered
// for host candidates. Implementations are selected once at Stack
// construction: NativeLister queries the OS interface table, and
// HostnameLister is a reduced fallback for platforms without one.
type InterfaceLister interface {
	ListAddresses() ([]InterfaceAddress, error)
}

// NativeLister enumerates addresses through the OS interface table. It
// uses the anet wrappers, which behave like net.Interfaces but also work
// on restricted platforms such as Android 11+.
type NativeLister struct{}

// ListAddresses returns every address of every interface, annotated with
// the interface flags. Interfaces whose addresses cannot be read are
// skipped; only a failure of the interface table itself is an error.
func (NativeLister) ListAddresses() ([]InterfaceAddress, error) {
	ifaces, err := anet.Interfaces()
	if err != nil {
		return nil, err
	}

	var out []InterfaceAddress
	for i := range ifaces {
		iface := &ifaces[i]
		up := iface.Flags&net.FlagUp != 0
		loopback := iface.Flags&net.FlagLoopback != 0

		addrs, err := anet.InterfaceAddrsByInterface(iface)
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch a := addr.(type) {
			case *net.IPNet:
				ip = a.IP
			case *net.IPAddr:
				ip = a.IP
			default:
				continue
			}
			out = append(out, InterfaceAddress{
				IP:        ip,
				Up:        up,
				Loopback:  loopback,
				Temporary: isTemporaryIPv6(ip),
			})
		}
	}
	return out, nil
}

// HostnameLister is the fallback enumeration strategy for platforms
// without a usable interface table: the flat system address list for
// IPv4, plus a lookup of the local hostname for IPv6. Interface flags
// are not visible here, so addresses are reported as up and classified
// as loopback from the address itself.
type HostnameLister struct{}

// ListAddresses returns the fallback address set. A failure of the flat
// address list is an error; a failed hostname lookup merely omits the
// IPv6 records, matching the best-effort nature of that path.
func (HostnameLister) ListAddresses() ([]InterfaceAddress, error) {
	addrs, err := anet.InterfaceAddrs()
	if err != nil {
		return nil, err
	}

	var out []InterfaceAddress
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		if ipnet.IP.To4() == nil {
			continue // IPv6 comes from the hostname lookup below
		}
		out = append(out, InterfaceAddress{
			IP:       ipnet.IP,
			Up:       true,
			Loopback: ipnet.IP.IsLoopback(),
		})
	}

	hostname, err := os.Hostname()
	if err != nil {
		return out, nil
	}
	ips, err := net.LookupIP(hostname)
	if err != nil {
		return out, nil
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			continue
		}
		out = append(out, InterfaceAddress{
			IP:        ip,
			Up:        true,
			Loopback:  ip.IsLoopback(),
			Temporary: isTemporaryIPv6(ip),
		})
	}
	return out, nil
}
