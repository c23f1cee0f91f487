// Package cli — path.go implements the "uiports path" command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/uiports/internal/model"
	"github.com/shinji-kodama/uiports/internal/paths"
)

// NewPathCommand creates the "path" cobra command.
func NewPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path [app]",
		Short: "Print the mapping file or an application's asset folder",
		Long: `Without arguments, print the location of the port mapping file.
With an application ID, print the application's asset folder under the
data root. Neither path needs to exist.

Examples:
  uiports path
  uiports path editor`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			appID := ""
			if len(args) == 1 {
				appID = args[0]
			}
			return runPath(cmd.OutOrStdout(), appID)
		},
	}
}

func runPath(w io.Writer, appID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root, err := cfg.ResolveDataRoot()
	if err != nil {
		return model.WrapCLIError(model.ExitConfigError, "failed to resolve data root", err)
	}

	var target string
	if appID == "" {
		target = paths.MappingFile(root)
	} else {
		if err := validateAppArg(appID); err != nil {
			return err
		}
		target, err = paths.ResolveAppAssetFolder(root, appID)
		if err != nil {
			return mappingError("failed to resolve asset folder for "+appID, err)
		}
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{"path": target}, "", "  ")
		fmt.Fprintln(w, string(data))
		return nil
	}
	fmt.Fprintln(w, target)
	return nil
}
