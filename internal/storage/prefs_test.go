package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrefsDefaults(t *testing.T) {
	p := NewPrefs(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, p.Load())
	require.Equal(t, DefaultLanguage, p.Language())
}

func TestPrefsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	p := NewPrefs(path)
	require.NoError(t, p.SetLanguage("fr"))
	require.False(t, p.Settings().UpdatedAt.IsZero())

	again := NewPrefs(path)
	require.NoError(t, again.Load())
	require.Equal(t, "fr", again.Language())
}

func TestPrefsRejectsUnknownLanguage(t *testing.T) {
	p := NewPrefs(filepath.Join(t.TempDir(), "settings.json"))
	require.ErrorIs(t, p.SetLanguage("uk"), ErrUnsupportedLanguage)
	require.Equal(t, DefaultLanguage, p.Language())
}

func TestPrefsLoadFallsBackOnBadLanguage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"language":"xx"}`), 0o644))

	p := NewPrefs(path)
	require.NoError(t, p.Load())
	require.Equal(t, DefaultLanguage, p.Language())
}

func TestPrefsLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
	require.Error(t, NewPrefs(path).Load())
}
