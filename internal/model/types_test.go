package model

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateAppID checks the identifier rules. Identifiers become folder
// names under the data root, so anything resembling a path is rejected.
func TestValidateAppID(t *testing.T) {
	tests := []struct {
		appID    string
		hasError bool
	}{
		{"editor", false},         // valid: plain word
		{"a", false},              // valid: single character
		{"app-one", false},        // valid: hyphen
		{"com.example_ui", false}, // valid: dots and underscores
		{"App2", false},           // valid: mixed case with digit
		{"", true},                // invalid: empty
		{"-editor", true},         // invalid: starts with hyphen
		{"editor.", true},         // invalid: ends with dot
		{"..", true},              // invalid: parent directory
		{"a/b", true},             // invalid: path separator
		{`a\b`, true},             // invalid: windows separator
		{"my app", true},          // invalid: space
	}

	for _, tt := range tests {
		t.Run(tt.appID, func(t *testing.T) {
			err := ValidateAppID(tt.appID)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestMappingError verifies that both the kind and the cause are reachable
// through errors.Is, and that the message names the operation and path.
func TestMappingError(t *testing.T) {
	t.Run("kind and cause", func(t *testing.T) {
		err := NewMappingError(ErrIO, "load", "/data/port_mapping.yml", fs.ErrPermission)

		assert.True(t, errors.Is(err, ErrIO))
		assert.True(t, errors.Is(err, fs.ErrPermission))
		assert.False(t, errors.Is(err, ErrMalformedData))
		assert.Equal(t, "load /data/port_mapping.yml: i/o error: permission denied", err.Error())
	})

	t.Run("no path no cause", func(t *testing.T) {
		err := NewMappingError(ErrNoPortsAvailable, "assign", "", nil)

		assert.True(t, errors.Is(err, ErrNoPortsAvailable))
		assert.Equal(t, "assign: no ports available", err.Error())
	})

	t.Run("errors.As through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("loading mapping: %w",
			NewMappingError(ErrMalformedData, "load", "/x", errors.New("bad yaml")))

		var mErr *MappingError
		require.True(t, errors.As(wrapped, &mErr))
		assert.Equal(t, "/x", mErr.Path)
		assert.Equal(t, ErrMalformedData, mErr.Kind)
	})
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ExitCode
	}{
		{"nil", nil, ExitSuccess},
		{"io", NewMappingError(ErrIO, "save", "/x", nil), ExitIOError},
		{"serialization", NewMappingError(ErrSerialization, "save", "/x", nil), ExitIOError},
		{"malformed", NewMappingError(ErrMalformedData, "load", "/x", nil), ExitMalformedData},
		{"no ports", NewMappingError(ErrNoPortsAvailable, "assign", "", nil), ExitPortAllocationFailed},
		{"unknown", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFor(tt.err))
		})
	}
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitAppNotFound, "no port assigned to \"editor\"")
		assert.Equal(t, ExitAppNotFound, err.Code)
		assert.Equal(t, "no port assigned to \"editor\"", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("disk full")
		err := WrapCLIError(ExitIOError, "failed to save port mapping", inner)
		assert.Equal(t, ExitIOError, err.Code)
		assert.Contains(t, err.Error(), "disk full")
		assert.Equal(t, inner, err.Unwrap())
		assert.True(t, errors.Is(err, inner))
	})
}
