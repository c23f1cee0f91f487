// Package paths resolves where uiports keeps its data on disk.
//
// Everything lives under a per-scope data root:
//
//	<data-root>/port_mapping.yml   the persisted application → port mapping
//	<data-root>/<app-id>/          per-application UI asset folder
//
// None of the functions here create directories; that happens lazily when
// the mapping is first saved.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/shinji-kodama/uiports/internal/model"
)

const (
	// AppName is the directory name used under the user's data home.
	AppName = "uiports"

	// UIsScope is the scope application UIs are stored under.
	UIsScope = "uis"

	// MappingFileName is the name of the persisted mapping file.
	MappingFileName = "port_mapping.yml"
)

// DataDirectoryFor returns the data root for the given scope:
// $XDG_DATA_HOME/uiports/<scope>, falling back to
// ~/.local/share/uiports/<scope> when XDG_DATA_HOME is unset.
func DataDirectoryFor(scope string) (string, error) {
	if scope == "" {
		return "", fmt.Errorf("scope must not be empty")
	}
	if filepath.Base(scope) != scope || scope == "." || scope == ".." {
		return "", fmt.Errorf("invalid scope %q: must be a single path element", scope)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" || !filepath.IsAbs(dataHome) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine home directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, AppName, scope), nil
}

// MappingFile returns the path of the mapping file under dataRoot.
func MappingFile(dataRoot string) string {
	return filepath.Join(dataRoot, MappingFileName)
}

// AppAssetFolder derives the per-application folder from the data root.
// It is a pure path join: no I/O, no validation.
func AppAssetFolder(dataRoot, appID string) string {
	return filepath.Join(dataRoot, appID)
}

// ResolveAppAssetFolder is the checked variant of AppAssetFolder. It
// validates appID and resolves the folder inside dataRoot, following any
// existing symlinks as if dataRoot were the filesystem root, so the result
// can never point outside of it.
func ResolveAppAssetFolder(dataRoot, appID string) (string, error) {
	if err := model.ValidateAppID(appID); err != nil {
		return "", err
	}
	p, err := securejoin.SecureJoin(dataRoot, appID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve asset folder for %q: %w", appID, err)
	}
	return p, nil
}
