// Package model defines the domain types and value objects for uiports.
//
// This package contains pure data structures with no external dependencies:
// application identifier validation, the PortEntry value, the error kinds
// returned by the port mapping (ErrIO, ErrMalformedData, ErrSerialization,
// ErrNoPortsAvailable) and the MappingError that carries them.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
