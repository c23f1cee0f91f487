// Package cli — list.go implements the "uiports list" command.
//
// The list command displays every application in the port mapping, sorted
// by identifier, as a text table or JSON array depending on --json.
//
// With --probe, each port is also checked against the host: whether it is
// currently bound, and whether a running Docker container publishes it.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/uiports/internal/config"
	"github.com/shinji-kodama/uiports/internal/docker"
	"github.com/shinji-kodama/uiports/internal/model"
	"github.com/shinji-kodama/uiports/internal/port"
)

// Port states reported by list --probe.
const (
	stateFree  = "free"
	stateInUse = "in-use"

	// stateDockerPrefix is followed by the container name.
	stateDockerPrefix = "docker:"
)

// listFlags holds the flag values for the list command.
type listFlags struct {
	// probe enables the host and Docker port checks.
	probe bool
}

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all applications and their ports",
		Long: `List every application in the port mapping with its assigned port.

With --probe, a STATE column shows whether each port is free, bound by some
process (typically the application's own UI), or published by a running
Docker container.

Examples:
  uiports list
  uiports list --probe
  uiports list --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.probe, "probe", false, "Check whether each port is currently bound")

	return cmd
}

// listRow is one output line of the list command.
type listRow struct {
	App   string `json:"app"`
	Port  uint16 `json:"port"`
	State string `json:"state,omitempty"`
}

func runList(ctx context.Context, w io.Writer, flags *listFlags) error {
	m, cfg, err := openMapping()
	if err != nil {
		return err
	}

	entries := m.Entries()
	VerboseLog("Found %d mapped applications in %s", len(entries), m.Path())

	var (
		used      map[uint16]bool
		published map[uint16]string
	)
	if flags.probe {
		used = probeUsedPorts(port.NewScanner(cfg.BindHost), entries)
		published = probePublishedPorts(ctx, cfg)
	}

	rows := buildListRows(entries, flags.probe, used, published)
	printListResult(w, rows, flags.probe)
	return nil
}

// probeUsedPorts returns the set of mapped ports currently bound on the host.
func probeUsedPorts(scanner *port.Scanner, entries []model.PortEntry) map[uint16]bool {
	ports := make([]uint16, 0, len(entries))
	for _, e := range entries {
		ports = append(ports, e.Port)
	}

	used := make(map[uint16]bool)
	for _, p := range scanner.UsedPorts(ports) {
		used[p] = true
	}
	return used
}

// probePublishedPorts asks Docker for published host ports. Docker being
// absent or unreachable is normal on many hosts, so failures only produce a
// verbose message and an empty result.
func probePublishedPorts(ctx context.Context, cfg *config.Config) map[uint16]string {
	if !cfg.DockerEnabled() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cli, err := docker.NewClient()
	if err != nil {
		VerboseLog("Skipping Docker check: %v", err)
		return nil
	}
	defer func() { _ = cli.Close() }()

	if err := cli.Ping(ctx); err != nil {
		VerboseLog("Skipping Docker check: %v", err)
		return nil
	}

	published, err := cli.PublishedPorts(ctx)
	if err != nil {
		VerboseLog("Skipping Docker check: %v", err)
		return nil
	}
	VerboseLog("Docker publishes %d host ports", len(published))
	return published
}

// buildListRows converts mapping entries to output rows. When probe is set,
// a Docker-published port takes precedence over a plain in-use report since
// it names the conflicting owner.
func buildListRows(entries []model.PortEntry, probe bool, used map[uint16]bool, published map[uint16]string) []listRow {
	rows := make([]listRow, 0, len(entries))
	for _, e := range entries {
		row := listRow{App: e.AppID, Port: e.Port}
		if probe {
			row.State = portState(e.Port, used, published)
		}
		rows = append(rows, row)
	}
	return rows
}

func portState(p uint16, used map[uint16]bool, published map[uint16]string) string {
	if name, ok := published[p]; ok {
		return stateDockerPrefix + name
	}
	if used[p] {
		return stateInUse
	}
	return stateFree
}

// printListResult outputs the rows in text or JSON format.
func printListResult(w io.Writer, rows []listRow, probe bool) {
	if IsJSONOutput() {
		printListResultJSON(w, rows)
	} else {
		printListResultText(w, rows, probe)
	}
}

// printListResultJSON outputs the rows under a top-level "apps" key.
func printListResultJSON(w io.Writer, rows []listRow) {
	result := struct {
		Apps []listRow `json:"apps"`
	}{
		// Empty slice instead of nil so JSON shows [] instead of null.
		Apps: append(make([]listRow, 0, len(rows)), rows...),
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(w, string(data))
}

// printListResultText outputs the rows as a table:
//
//	APP                  PORT   STATE
//	editor               51423  in-use
//	viewer               51800  free
func printListResultText(w io.Writer, rows []listRow, probe bool) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No applications have a port assigned.")
		return
	}

	if probe {
		fmt.Fprintf(w, "%-30s %-6s %s\n", "APP", "PORT", "STATE")
	} else {
		fmt.Fprintf(w, "%-30s %s\n", "APP", "PORT")
	}

	for _, r := range rows {
		if probe {
			fmt.Fprintf(w, "%-30s %-6d %s\n", r.App, r.Port, r.State)
		} else {
			fmt.Fprintf(w, "%-30s %d\n", r.App, r.Port)
		}
	}
}
