// Package port implements free-port discovery and port availability
// scanning for uiports.
//
// Allocation is delegated to the operating system: EphemeralProvider binds
// port 0 on the loopback interface, reads back the port the kernel picked
// and releases it immediately. The Provider function type isolates this
// OS interaction so callers can inject a deterministic fake in tests.
//
// The Scanner verifies OS-level port availability via net.Listen and is
// used to report whether mapped ports are currently bound.
package port
