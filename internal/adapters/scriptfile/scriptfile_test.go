package scriptfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"touchrec/internal/core/gesture"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	interval := int64(1300)
	captured := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	commands := []gesture.Command{
		{Kind: gesture.KindTap, X: 540, Y: 960, CapturedAt: captured},
		{
			Kind: gesture.KindSwipe,
			X:    100, Y: 100, X2: 500, Y2: 500,
			DurationMS:       300,
			IntervalBeforeMS: &interval,
			CapturedAt:       captured.Add(1600 * time.Millisecond),
		},
	}

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(Save(path, commands))

	loaded, err := Load(path)
	require.NoError(err)
	require.Len(loaded, 2)
	require.Equal(commands[0], loaded[0])

	require.NotNil(loaded[1].IntervalBeforeMS)
	require.Equal(int64(1300), *loaded[1].IntervalBeforeMS)
	require.Equal(commands[1].DurationMS, loaded[1].DurationMS)

	// The first command's interval stays absent, not zero.
	require.Nil(loaded[0].IntervalBeforeMS)
}

func TestSaveCreatesParentDir(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
	require.NoError(Save(path, []gesture.Command{{Kind: gesture.KindTap, X: 1, Y: 2}}))

	loaded, err := Load(path)
	require.NoError(err)
	require.Len(loaded, 1)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	require.NoError(Save(path, nil))

	entries, err := os.ReadDir(dir)
	require.NoError(err)
	require.Len(entries, 1)
	require.Equal("session.json", entries[0].Name())
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "commands": []}`), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported script version")
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	doc := `{"version": 1, "commands": [{"kind": "pinch", "x": 1, "y": 2, "captured_at": "2026-08-24T10:00:00Z"}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown kind")
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
