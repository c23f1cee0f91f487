// Package cli — list_test.go contains unit tests for the pure formatting
// functions used by the list command.
//
// These tests verify data transformation logic without requiring a Docker
// daemon or a mapping file.
package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/uiports/internal/model"
)

// TestPortState verifies the precedence of the probe results: a Docker
// owner beats a plain in-use report.
func TestPortState(t *testing.T) {
	used := map[uint16]bool{51423: true, 51800: true}
	published := map[uint16]string{51800: "web"}

	tests := []struct {
		name string
		port uint16
		want string
	}{
		{name: "bound by a process", port: 51423, want: stateInUse},
		{name: "published by a container", port: 51800, want: "docker:web"},
		{name: "free", port: 52000, want: stateFree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, portState(tt.port, used, published))
		})
	}

	// nil maps are what a disabled or unreachable probe produces.
	assert.Equal(t, stateFree, portState(51423, nil, nil))
}

func TestBuildListRows(t *testing.T) {
	entries := []model.PortEntry{
		{AppID: "editor", Port: 51423},
		{AppID: "viewer", Port: 51800},
	}

	t.Run("without probe", func(t *testing.T) {
		rows := buildListRows(entries, false, map[uint16]bool{51423: true}, nil)
		assert.Equal(t, []listRow{
			{App: "editor", Port: 51423},
			{App: "viewer", Port: 51800},
		}, rows)
	})

	t.Run("with probe", func(t *testing.T) {
		rows := buildListRows(entries, true, map[uint16]bool{51423: true}, nil)
		assert.Equal(t, []listRow{
			{App: "editor", Port: 51423, State: stateInUse},
			{App: "viewer", Port: 51800, State: stateFree},
		}, rows)
	})

	t.Run("no entries", func(t *testing.T) {
		assert.Empty(t, buildListRows(nil, true, nil, nil))
	})
}

func TestPrintListResultText(t *testing.T) {
	rows := []listRow{
		{App: "editor", Port: 51423, State: stateInUse},
		{App: "viewer", Port: 51800, State: stateFree},
	}

	var buf bytes.Buffer
	printListResultText(&buf, rows, true)

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Regexp(t, `^APP\s+PORT\s+STATE$`, string(lines[0]))
	assert.Regexp(t, `^editor\s+51423\s+in-use$`, string(lines[1]))
	assert.Regexp(t, `^viewer\s+51800\s+free$`, string(lines[2]))

	buf.Reset()
	printListResultText(&buf, rows, false)
	assert.NotContains(t, buf.String(), "STATE")
	assert.NotContains(t, buf.String(), "in-use")

	buf.Reset()
	printListResultText(&buf, nil, false)
	assert.Equal(t, "No applications have a port assigned.\n", buf.String())
}

// TestPrintListResultJSON verifies that an empty listing is encoded as an
// empty array rather than null.
func TestPrintListResultJSON(t *testing.T) {
	var buf bytes.Buffer
	printListResultJSON(&buf, nil)

	var got map[string][]listRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Contains(t, got, "apps")
	assert.NotNil(t, got["apps"])
	assert.Empty(t, got["apps"])
	assert.Contains(t, buf.String(), `"apps": []`)

	buf.Reset()
	printListResultJSON(&buf, []listRow{{App: "editor", Port: 51423}})
	assert.JSONEq(t, `{"apps":[{"app":"editor","port":51423}]}`, buf.String())
}
