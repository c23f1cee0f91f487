// Package cli implements the cobra-based CLI commands for uiports.
//
// Each subcommand (list, get, assign, remove, path) is defined in its own
// file within this package. This file defines the root command that serves as
// the parent for all subcommands and handles global flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/uiports/internal/config"
	"github.com/shinji-kodama/uiports/internal/mapping"
	"github.com/shinji-kodama/uiports/internal/model"
	"github.com/shinji-kodama/uiports/internal/port"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables debug logging on stderr.
	verbose bool

	// configPath is the --config flag. Empty means the default location,
	// where a missing file is not an error.
	configPath string

	// dataDir is the --data-dir flag. It overrides the configured data root.
	dataDir string
)

// providerFor returns the port source used by assign. Tests replace it to
// get deterministic ports.
var providerFor = func(cfg *config.Config) port.Provider {
	return port.EphemeralProvider(cfg.BindHost)
}

// logger receives VerboseLog output and the mapping's debug records.
// It is replaced in the root command's PersistentPreRunE.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action — it only provides
// help text and global flags.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uiports",
		Short: "Stable local ports for application UIs",
		Long: `uiports assigns each managed application a local port for its embedded UI
and remembers it across restarts.

The mapping is stored as port_mapping.yml under the data root, next to one
asset folder per application.`,

		// Error output is formatted by Execute (text or JSON).
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = newLogger(cmd.ErrOrStderr(), verbose)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: <user config dir>/uiports/config.jsonc)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data root holding port_mapping.yml (overrides config)")

	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewGetCommand())
	rootCmd.AddCommand(NewAssignCommand())
	rootCmd.AddCommand(NewRemoveCommand())
	rootCmd.AddCommand(NewPathCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError types carry their own exit codes; mapping errors are translated
// with model.ExitCodeFor; anything else exits with code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(rootCmd.ErrOrStderr(), cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(rootCmd.ErrOrStderr(), err.Error(), nil)
		os.Exit(int(model.ExitCodeFor(err)))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// newLogger builds the text logger used for verbose output. Without
// --verbose only warnings and errors are shown.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(format, args...))
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig reads the config file named by --config (or the default one)
// and applies --data-dir.
func loadConfig() (*config.Config, error) {
	path := configPath
	explicit := path != ""
	if !explicit {
		p, err := config.DefaultPath()
		if err != nil {
			// No config directory at all: run on defaults.
			VerboseLog("No config directory: %v", err)
			return applyFlags(config.Default()), nil
		}
		path = p
	}

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, err
	}
	VerboseLog("Using config %s", path)
	return applyFlags(cfg), nil
}

// applyFlags overrides config values with command-line flags. A relative
// --data-dir is taken relative to the working directory.
func applyFlags(cfg *config.Config) *config.Config {
	if dataDir != "" {
		root, err := filepath.Abs(dataDir)
		if err != nil {
			root = dataDir
		}
		cfg.DataRoot = root
	}
	return cfg
}

// openMapping loads the configuration and the port mapping it points at.
func openMapping() (*mapping.PortMapping, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	root, err := cfg.ResolveDataRoot()
	if err != nil {
		return nil, nil, model.WrapCLIError(model.ExitConfigError, "failed to resolve data root", err)
	}
	VerboseLog("Data root: %s", root)

	m, err := mapping.Load(root,
		mapping.WithProvider(providerFor(cfg)),
		mapping.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, mappingError("failed to load port mapping", err)
	}
	return m, cfg, nil
}

// mappingError wraps a mapping failure into a CLIError whose exit code is
// derived from the error kind.
func mappingError(message string, err error) error {
	return model.WrapCLIError(model.ExitCodeFor(err), message, err)
}

// validateAppArg checks an application identifier given on the command line.
func validateAppArg(appID string) error {
	if err := model.ValidateAppID(appID); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid application ID", err)
	}
	return nil
}
