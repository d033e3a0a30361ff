package xdg

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// XDGDirs resolves configuration locations per the XDG Base Directory
// Specification.
type XDGDirs struct {
	configHome string
	configDirs []string
}

// NewXDGDirs reads XDG_CONFIG_HOME and XDG_CONFIG_DIRS, applying the
// defaults from the specification when unset.
func NewXDGDirs() *XDGDirs {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
		if homeDir == "" {
			homeDir = "/tmp"
		}
	}

	x := &XDGDirs{}

	x.configHome = os.Getenv("XDG_CONFIG_HOME")
	if x.configHome == "" {
		x.configHome = filepath.Join(homeDir, ".config")
	}

	configDirsEnv := os.Getenv("XDG_CONFIG_DIRS")
	if configDirsEnv == "" {
		x.configDirs = []string{"/etc/xdg"}
	} else {
		x.configDirs = filepath.SplitList(configDirsEnv)
	}

	return x
}

// ConfigHome returns the base directory for user-specific configuration files
func (x *XDGDirs) ConfigHome() string {
	return x.configHome
}

// ConfigDirs returns the preference-ordered base directories for configuration files
func (x *XDGDirs) ConfigDirs() []string {
	return append([]string{x.configHome}, x.configDirs...)
}

// AppConfigDir returns the application-specific config directory
func (x *XDGDirs) AppConfigDir(appName string) string {
	return filepath.Join(x.configHome, appName)
}

// FindConfigFile returns the first existing appName/fileName below the
// config directories, or "" when there is none.
func (x *XDGDirs) FindConfigFile(appName, fileName string) (string, error) {
	for _, dir := range x.ConfigDirs() {
		path := filepath.Join(dir, appName, fileName)
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}
