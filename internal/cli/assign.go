// Package cli — assign.go implements the "uiports assign" command.
//
// assign asks the operating system for a free port, records it for the
// application and persists the mapping. An application that already has a
// port gets a new one unless --if-missing is given.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/uiports/internal/model"
)

// Actions reported in JSON output.
const (
	actionAssigned = "assigned"
	actionKept     = "kept"
)

// assignFlags holds the flag values for the assign command.
type assignFlags struct {
	// ifMissing keeps an existing assignment instead of replacing it.
	ifMissing bool
}

// NewAssignCommand creates the "assign" cobra command.
func NewAssignCommand() *cobra.Command {
	flags := &assignFlags{}

	cmd := &cobra.Command{
		Use:   "assign <app>",
		Short: "Assign a fresh port to an application",
		Long: `Assign a fresh port to an application and save the mapping.

The port is chosen by the operating system and is free at the time of
assignment. An existing assignment is replaced; with --if-missing it is
kept and printed instead, which gives the "get or assign" behaviour an
application launcher needs.

Examples:
  uiports assign editor
  uiports assign --if-missing editor`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssign(cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.ifMissing, "if-missing", false, "Keep the existing port if the application already has one")

	return cmd
}

func runAssign(w io.Writer, appID string, flags *assignFlags) error {
	if err := validateAppArg(appID); err != nil {
		return err
	}

	m, _, err := openMapping()
	if err != nil {
		return err
	}

	if flags.ifMissing {
		if p, ok := m.PortForApp(appID); ok {
			VerboseLog("Application %q already uses port %d", appID, p)
			printPortEntry(w, model.PortEntry{AppID: appID, Port: p}, actionKept)
			return nil
		}
	}

	p, err := m.AssignPort(appID)
	if err != nil {
		return mappingError("failed to assign port to "+appID, err)
	}

	VerboseLog("Saved mapping to %s", m.Path())
	printPortEntry(w, model.PortEntry{AppID: appID, Port: p}, actionAssigned)
	return nil
}
