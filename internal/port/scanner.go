package port

import (
	"net"
	"strconv"
)

// Scanner checks whether specific ports are available on the host machine.
//
// It asks the operating system directly with net.Listen rather than
// parsing /proc/net/* or relying on external commands like `lsof` or `ss`.
//
// The scanner is used to report the state of already-mapped ports; it plays
// no part in allocation, which always goes through a Provider.
type Scanner struct {
	// host is the address probes bind to. Empty means all interfaces.
	host string
}

// NewScanner creates a Scanner that probes ports on the given host.
// Pass DefaultHost to match the address UIs are served on.
func NewScanner(host string) *Scanner {
	return &Scanner{host: host}
}

// IsPortAvailable reports whether port can be bound over TCP on the
// scanner's host. A successful probe listener is closed before returning.
// Port 0 is never reported as available.
func (s *Scanner) IsPortAvailable(port uint16) bool {
	if port == 0 {
		return false
	}

	listener, err := net.Listen("tcp", net.JoinHostPort(s.host, strconv.Itoa(int(port))))
	if err != nil {
		return false
	}
	_ = listener.Close()
	return true
}

// UsedPorts returns the subset of ports that are currently bound over TCP,
// preserving the input order.
func (s *Scanner) UsedPorts(ports []uint16) []uint16 {
	var used []uint16
	for _, p := range ports {
		if !s.IsPortAvailable(p) {
			used = append(used, p)
		}
	}
	return used
}
