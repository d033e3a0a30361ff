package xdg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/programme-lv/reporter/internal/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindConfigFilePrefersConfigHome(t *testing.T) {
	home := t.TempDir()
	sys := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_CONFIG_DIRS", sys)

	dirs := xdg.NewXDGDirs()
	assert.Equal(t, []string{home, sys}, dirs.ConfigDirs())

	path, err := dirs.FindConfigFile("reporter", "reporter.toml")
	require.NoError(t, err)
	assert.Empty(t, path)

	require.NoError(t, os.MkdirAll(filepath.Join(sys, "reporter"), 0o755))
	sysFile := filepath.Join(sys, "reporter", "reporter.toml")
	require.NoError(t, os.WriteFile(sysFile, []byte("[api]\n"), 0o644))

	path, err = dirs.FindConfigFile("reporter", "reporter.toml")
	require.NoError(t, err)
	assert.Equal(t, sysFile, path)

	require.NoError(t, os.MkdirAll(dirs.AppConfigDir("reporter"), 0o755))
	homeFile := filepath.Join(home, "reporter", "reporter.toml")
	require.NoError(t, os.WriteFile(homeFile, []byte("[api]\n"), 0o644))

	path, err = dirs.FindConfigFile("reporter", "reporter.toml")
	require.NoError(t, err)
	assert.Equal(t, homeFile, path)
}
