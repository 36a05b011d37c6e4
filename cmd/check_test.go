package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/recfix/internal/event"
	"github.com/grovetools/recfix/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadItems(t *testing.T) {
	t.Run("single object", func(t *testing.T) {
		items, err := readItems(strings.NewReader(`{"id": "a", "date": "2024-03-05"}`))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "a", items[0]["id"])
	})

	t.Run("array of objects", func(t *testing.T) {
		items, err := readItems(strings.NewReader(`[{"id": "a"}, {"id": "b"}]`))
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("non-object element", func(t *testing.T) {
		_, err := readItems(strings.NewReader(`[{"id": "a"}, 3]`))
		assert.ErrorContains(t, err, "item 2")
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := readItems(strings.NewReader(`{`))
		assert.Error(t, err)
	})
}

func TestFilterByID(t *testing.T) {
	items := []store.Item{{"id": "a"}, {"id": "b"}, {"name": "no id"}}
	assert.Equal(t, []store.Item{{"id": "b"}}, filterByID(items, "b"))
	assert.Empty(t, filterByID(items, "c"))
}

func TestRootCommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"fix", "scan", "check", "sample"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
		assert.NotNil(t, sub.Flags().Lookup("backend"), "%s registers store flags", name)
	}
}

func TestCheckDiffUsesConfiguredLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recfix.yml")
	require.NoError(t, os.WriteFile(path, []byte("fix:\n  max_diff_lines: 1\n"), 0o644))

	flags := storeFlags{configPath: path}
	cfg, err := flags.load()
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Fix.MaxDiffLines)

	items, err := readItems(strings.NewReader(`{"id": "x"}`))
	require.NoError(t, err)
	rec := event.NewNormalizer().Normalize(items[0])

	assert.Contains(t, recordDiff(items[0], rec, cfg.Fix.MaxDiffLines), "more changed lines")
	assert.NotContains(t, recordDiff(items[0], rec, 0), "more changed lines")
}

func TestBoolFlagPrecedence(t *testing.T) {
	cmd := newFixCmd()
	assert.True(t, boolFlag(cmd, "unique-ids", false, true), "unset flag keeps the configured value")

	require.NoError(t, cmd.Flags().Set("unique-ids", "false"))
	assert.False(t, boolFlag(cmd, "unique-ids", false, true), "explicit flag switches the setting off")
}
