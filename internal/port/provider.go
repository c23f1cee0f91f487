package port

import (
	"fmt"
	"net"
)

// DefaultHost is the loopback address ports are probed on. Application UIs
// are only ever served locally.
const DefaultHost = "127.0.0.1"

// Provider hands out a port number that is currently unused on the host.
//
// It is the single seam between the port mapping and the operating system:
// production code uses EphemeralProvider, tests substitute a deterministic
// fake. A Provider must not retry on failure; the caller decides.
type Provider func() (uint16, error)

// EphemeralProvider returns a Provider that asks the OS for an ephemeral
// TCP port on host: it binds host:0, reads back the assigned port and
// closes the listener before returning.
//
// The port is free at the moment the listener closes. Another process may
// grab it before the UI binds it; there is no way to close that window
// without a central allocator.
func EphemeralProvider(host string) Provider {
	return func() (uint16, error) {
		listener, err := net.Listen("tcp", net.JoinHostPort(host, "0"))
		if err != nil {
			return 0, fmt.Errorf("failed to bind ephemeral port on %q: %w", host, err)
		}
		defer func() { _ = listener.Close() }()

		tcpAddr, ok := listener.Addr().(*net.TCPAddr)
		if !ok {
			return 0, fmt.Errorf("unexpected listener address type %T", listener.Addr())
		}
		if tcpAddr.Port <= 0 || tcpAddr.Port > 65535 {
			return 0, fmt.Errorf("OS returned invalid port %d", tcpAddr.Port)
		}
		return uint16(tcpAddr.Port), nil
	}
}
