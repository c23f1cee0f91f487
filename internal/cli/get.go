// Package cli — get.go implements the "uiports get" command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/uiports/internal/model"
)

// NewGetCommand creates the "get" cobra command.
func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <app>",
		Short: "Print the port assigned to an application",
		Long: `Print the port assigned to an application.

Exits with code 5 when the application has no port. Nothing is written to
the mapping file.

Examples:
  uiports get editor
  uiports get --json editor`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.OutOrStdout(), args[0])
		},
	}
}

func runGet(w io.Writer, appID string) error {
	if err := validateAppArg(appID); err != nil {
		return err
	}

	m, _, err := openMapping()
	if err != nil {
		return err
	}

	p, ok := m.PortForApp(appID)
	if !ok {
		return model.NewCLIError(model.ExitAppNotFound,
			fmt.Sprintf("application %q has no port assigned", appID))
	}

	printPortEntry(w, model.PortEntry{AppID: appID, Port: p}, "")
	return nil
}

// printPortEntry outputs a single entry. In text mode only the port number is
// printed so the output can be used directly in shell scripts. A non-empty
// action is included in JSON output.
func printPortEntry(w io.Writer, entry model.PortEntry, action string) {
	if !IsJSONOutput() {
		fmt.Fprintln(w, entry.Port)
		return
	}

	result := map[string]interface{}{
		"app":  entry.AppID,
		"port": entry.Port,
	}
	if action != "" {
		result["action"] = action
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(w, string(data))
}
