// Package cli — remove.go implements the "uiports remove" command.
//
// The remove command drops an application from the port mapping and saves
// it. Removing an application that has no port is not an error. The
// application's asset folder is left in place.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewRemoveCommand creates the "remove" cobra command.
func NewRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <app>",
		Short: "Remove an application from the port mapping",
		Long: `Remove an application from the port mapping and save it.

The command succeeds when the application was not mapped. Its asset folder
under the data root is not touched.

Examples:
  uiports remove editor`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.OutOrStdout(), args[0])
		},
	}
}

func runRemove(w io.Writer, appID string) error {
	if err := validateAppArg(appID); err != nil {
		return err
	}

	m, _, err := openMapping()
	if err != nil {
		return err
	}

	_, existed := m.PortForApp(appID)
	if err := m.RemoveApp(appID); err != nil {
		return mappingError("failed to remove "+appID, err)
	}

	printRemoveResult(w, appID, existed)
	return nil
}

// printRemoveResult outputs the remove command result in text or JSON format.
func printRemoveResult(w io.Writer, appID string, existed bool) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"app":     appID,
			"action":  "removed",
			"existed": existed,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if existed {
		fmt.Fprintf(w, "Removed %q from the port mapping\n", appID)
	} else {
		fmt.Fprintf(w, "%q had no port assigned\n", appID)
	}
}
