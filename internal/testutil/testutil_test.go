package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/keytip/internal/config"
	"github.com/at-ishikawa/keytip/internal/content"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, []int64{GlossaryNodeID}, cfg.Dictionary.ParentNodes)
	assert.Equal(t, map[string]string{
		"term":  ";description",
		"event": "title;summary",
	}, cfg.Dictionary.Classes)
	assert.False(t, cfg.Dictionary.CaseSensitive)
	assert.Equal(t, filepath.Join(tmpDir, "cache", "dictionary"), cfg.Cache.FullPath())
	assert.Equal(t, filepath.Join(tmpDir, "content.yml"), cfg.Content.File)

	info, err := os.Stat(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSetupTestConfig_Options(t *testing.T) {
	tmpDir := t.TempDir()
	owl := content.WordNode{ID: 20, ParentID: GlossaryNodeID, ClassIdentifier: "bird", Name: "owl",
		Attributes: map[string]string{"note": "Hoots"}}
	got := SetupTestConfig(t, tmpDir,
		WithNodes(owl),
		WithClasses(map[string]string{"bird": ";note"}),
		WithCaseSensitive(true),
	)

	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Dictionary.CaseSensitive)
	assert.Equal(t, map[string]string{"bird": ";note"}, cfg.Dictionary.Classes)

	source := content.NewYAMLSource(cfg.Content.File)
	count, err := source.CountNodes(t.Context(), []int64{GlossaryNodeID}, []string{"bird"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSetupBrokenConfig(t *testing.T) {
	got := SetupBrokenConfig(t, t.TempDir())

	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	_, err = loader.Load()
	assert.Error(t, err)
}
