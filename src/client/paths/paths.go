// Package paths resolves where the topmolt CLI keeps its files.
// Linux and macOS follow XDG-style locations under $HOME; Windows uses %APPDATA% and %LOCALAPPDATA%.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	projectOrg  = "topmolt"
	projectName = "cli"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// ConfigDir returns the CLI config directory
// Linux: ~/.config/topmolt/cli/
// Windows: %APPDATA%\topmolt\cli\
func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), projectOrg, projectName)
	}
	return filepath.Join(home(), ".config", projectOrg, projectName)
}

// CacheDir returns the CLI cache directory
// Linux: ~/.cache/topmolt/cli/
// Windows: %LOCALAPPDATA%\topmolt\cli\cache\
func CacheDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), projectOrg, projectName, "cache")
	}
	return filepath.Join(home(), ".cache", projectOrg, projectName)
}

// LogDir returns the CLI log directory
// Linux: ~/.local/log/topmolt/cli/
// Windows: %LOCALAPPDATA%\topmolt\cli\log\
func LogDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), projectOrg, projectName, "log")
	}
	return filepath.Join(home(), ".local", "log", projectOrg, projectName)
}

// ConfigFile returns the default config file path
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "cli.yml")
}

// LogFile returns the default log file path
func LogFile() string {
	return filepath.Join(LogDir(), "cli.log")
}

// EnsureDirs creates the config, cache and log directories with mode 0700.
func EnsureDirs() error {
	for _, dir := range []string{ConfigDir(), CacheDir(), LogDir()} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
		if err := os.Chmod(dir, 0700); err != nil {
			return fmt.Errorf("chmod dir %s: %w", dir, err)
		}
	}
	return nil
}

// EnsureFile creates the parent directory of path
func EnsureFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading "~" with the home directory
func ExpandHome(path string) string {
	if path == "~" {
		return home()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home(), path[2:])
	}
	return path
}

// ResolveConfigPath turns the --config flag into a file path.
// Empty means ConfigFile(); relative names resolve inside ConfigDir(); a missing extension becomes .yml.
func ResolveConfigPath(configFlag string) string {
	if configFlag == "" {
		return ConfigFile()
	}

	configFlag = ExpandHome(configFlag)
	if filepath.IsAbs(configFlag) {
		return addExtIfNeeded(configFlag)
	}
	return addExtIfNeeded(filepath.Join(ConfigDir(), configFlag))
}

// addExtIfNeeded prefers an existing .yml, then .yaml, and defaults to .yml
func addExtIfNeeded(path string) string {
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		return path
	case "":
		for _, ext := range []string{".yml", ".yaml"} {
			if _, err := os.Stat(path + ext); err == nil {
				return path + ext
			}
		}
		return path + ".yml"
	default:
		return path
	}
}
