package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JustBobinAround/jef/internal/core"
)

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestBrowserListsChildrenSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "c.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "cd.txt"), []byte("x"), 0o644))

	orig, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(orig)
	require.NoError(t, os.Chdir(dir))

	halt := &core.HaltFlag{}
	term := core.NewCell("")
	b := New(term, halt, nil)
	b.refresh()

	require.Equal(t, []string{"a.txt", "b"}, names(b.Results()))

	// Scenario S1: set search_term = "c" -> no top-level child matches.
	term.Set("c")
	b.refresh()
	require.Empty(t, b.Results())
}

func TestBrowserChdirRefreshesListing(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "b")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "cd.txt"), []byte("x"), 0o644))

	orig, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(orig)
	require.NoError(t, os.Chdir(dir))

	halt := &core.HaltFlag{}
	term := core.NewCell("")
	b := New(term, halt, nil)
	b.refresh()

	require.NoError(t, os.Chdir(sub))
	b.refresh()
	require.Equal(t, []string{"c.txt", "cd.txt"}, names(b.Results()))
}

func TestBrowserCaseInsensitivePrefix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "MainFile.RS"), []byte("x"), 0o644))

	orig, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(orig)
	require.NoError(t, os.Chdir(dir))

	halt := &core.HaltFlag{}
	term := core.NewCell("main")
	b := New(term, halt, nil)
	b.refresh()
	require.Equal(t, []string{"MainFile.RS"}, names(b.Results()))
}
