package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigOpensTxtInVimUnderTUI(t *testing.T) {
	c := Default()
	rule, ok := c.AppForExtension("txt")
	require.True(t, ok)
	require.Equal(t, "vim", rule.App)
	require.True(t, rule.TUI)
}

func TestAppForExtensionIsCaseExact(t *testing.T) {
	c := Default()
	_, ok := c.AppForExtension("TXT")
	require.False(t, ok, "extension matching is exact-case per spec")
}

func TestLoadFallsBackWhenHomeUnset(t *testing.T) {
	t.Setenv("HOME", "")
	got := Load(nil)
	require.Equal(t, Default(), got)
}

func TestLoadReadsUserConfig(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".config", "jef"), 0o755))
	custom := `
[[app_rule]]
app = "nvim"
tui = true
file_types = ["md", "rs"]

[special_rule]
app = "bash"
`
	require.NoError(t, os.WriteFile(filepath.Join(home, ".config", "jef", "jef.toml"), []byte(custom), 0o644))
	t.Setenv("HOME", home)

	c := Load(nil)
	rule, ok := c.AppForExtension("rs")
	require.True(t, ok)
	require.Equal(t, "nvim", rule.App)
	require.Equal(t, "bash", c.SpecialRule.App)
}

func TestLoadFallsBackOnParseFailure(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".config", "jef"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".config", "jef", "jef.toml"), []byte("not valid toml [[["), 0o644))
	t.Setenv("HOME", home)

	require.Equal(t, Default(), Load(nil))
}
