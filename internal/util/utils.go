package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/regexify/regexify/internal/i18n"
)

// AppName is the directory name used under the user's config directory.
const AppName = "regexify"

// ExpandPath makes path absolute. A leading ~ names the home directory, and
// symlinks are followed when the target exists, so a replaced file keeps its
// link.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", errors.New(i18n.T("util_error_path_is_empty"))
	}
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.New(i18n.T("util_error_resolve_home_directory"))
		}
		path = filepath.Join(home, path[1:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.New(i18n.T("util_error_get_absolute_path"))
	}
	resolved, err := filepath.EvalSymlinks(abs)
	switch {
	case err == nil:
		return resolved, nil
	case errors.Is(err, fs.ErrNotExist):
		return abs, nil
	default:
		return "", fmt.Errorf(i18n.T("util_error_resolve_symlinks"), err)
	}
}

// ConfigDir returns ~/.config/regexify.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf(i18n.T("util_error_determine_home_directory"), err)
	}
	return filepath.Join(homeDir, ".config", AppName), nil
}

// GetDefaultConfigPath returns the default path for the configuration file
// if it exists, otherwise returns an empty string.
func GetDefaultConfigPath() (string, error) {
	return existingInConfigDir("config.yaml")
}

// GetDefaultEnvPath returns the path of the .env file in the config
// directory if it exists, otherwise returns an empty string.
func GetDefaultEnvPath() (string, error) {
	return existingInConfigDir(".env")
}

func existingInConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf(i18n.T("util_error_accessing_config_path"), err)
	}
	return path, nil
}
