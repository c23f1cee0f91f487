package model

import (
	"errors"
	"fmt"
	"regexp"
)

// appIDRegex validates application identifiers: alphanumeric plus dots,
// underscores and hyphens, starting and ending with an alphanumeric.
// Identifiers double as folder names under the data root, so path
// separators are never allowed.
var appIDRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9._-]{0,126}[a-zA-Z0-9])?$`)

// ValidateAppID checks if the given string is a usable application identifier.
func ValidateAppID(appID string) error {
	if appID == "" {
		return fmt.Errorf("application identifier must not be empty")
	}
	if !appIDRegex.MatchString(appID) {
		return fmt.Errorf("invalid application identifier %q: must contain only alphanumeric characters, dots, underscores and hyphens, and start/end with alphanumeric", appID)
	}
	return nil
}

// PortEntry is a single application → port pair, as presented to callers
// that need a stable listing (the mapping itself is unordered).
type PortEntry struct {
	// AppID is the application identifier that owns the port.
	AppID string `json:"app"`

	// Port is the host port assigned to the application's UI.
	Port uint16 `json:"port"`
}

// Error kinds for the port mapping. They are matched with errors.Is.
var (
	// ErrIO is a filesystem read or write failure other than "not found"
	// on load.
	ErrIO = errors.New("i/o error")

	// ErrMalformedData means the mapping file exists but does not decode
	// into a mapping of application identifiers to ports.
	ErrMalformedData = errors.New("malformed port mapping data")

	// ErrSerialization means the in-memory mapping could not be encoded.
	ErrSerialization = errors.New("port mapping serialization failed")

	// ErrNoPortsAvailable means the host did not hand out a free port.
	ErrNoPortsAvailable = errors.New("no ports available")
)

// MappingError is the structured error returned by every port mapping
// operation. It carries the error kind, the operation that failed, the
// file involved (if any) and the underlying cause.
type MappingError struct {
	// Kind is one of ErrIO, ErrMalformedData, ErrSerialization or
	// ErrNoPortsAvailable.
	Kind error

	// Op names the failing operation: "load", "assign", "remove" or "save".
	Op string

	// Path is the mapping file path. Empty when no file was involved.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error formats the error as "op path: kind: cause".
func (e *MappingError) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause, so callers can test for
// either with errors.Is (e.g. ErrIO and fs.ErrPermission).
func (e *MappingError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewMappingError creates a MappingError of the given kind.
func NewMappingError(kind error, op, path string, err error) *MappingError {
	return &MappingError{Kind: kind, Op: op, Path: path, Err: err}
}

// ExitCode defines standard CLI exit codes.
// These codes allow scripts to programmatically determine the outcome
// of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitIOError indicates the mapping file could not be read or written.
	ExitIOError ExitCode = 2

	// ExitMalformedData indicates the mapping file could not be parsed.
	ExitMalformedData ExitCode = 3

	// ExitPortAllocationFailed indicates the host reported no free port.
	ExitPortAllocationFailed ExitCode = 4

	// ExitAppNotFound indicates the application has no assigned port.
	ExitAppNotFound ExitCode = 5

	// ExitConfigError indicates the configuration file is invalid.
	ExitConfigError ExitCode = 6
)

// ExitCodeFor translates a mapping error kind into an exit code.
// Errors that carry no known kind map to ExitGeneralError.
func ExitCodeFor(err error) ExitCode {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrMalformedData):
		return ExitMalformedData
	case errors.Is(err, ErrNoPortsAvailable):
		return ExitPortAllocationFailed
	case errors.Is(err, ErrIO), errors.Is(err, ErrSerialization):
		return ExitIOError
	default:
		return ExitGeneralError
	}
}

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
