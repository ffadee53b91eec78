// Package testutil provides shared test helpers for creating config files and content tree fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/keytip/internal/content"
)

const GlossaryNodeID int64 = 2

// DefaultNodes is the content tree written by SetupTestConfig: a glossary folder with a
// term, an event and a term without a description.
func DefaultNodes() []content.WordNode {
	modified := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []content.WordNode{
		{ID: GlossaryNodeID, ParentID: 1, ClassIdentifier: "folder", Name: "Glossary", Modified: modified},
		{ID: 10, ParentID: GlossaryNodeID, ClassIdentifier: "term", Name: "fox", Modified: modified,
			Attributes: map[string]string{"description": "A wild animal"}},
		{ID: 11, ParentID: GlossaryNodeID, ClassIdentifier: "event", Name: "Concert night", Modified: modified,
			Attributes: map[string]string{"title": "Concert", "summary": "Live music"}},
	}
}

// ConfigOption configures optional fields when creating a config file fixture.
type ConfigOption func(*testConfig)

type testConfig struct {
	nodes         []content.WordNode
	classes       map[string]string
	caseSensitive bool
}

// WithNodes replaces the nodes of the content tree.
func WithNodes(nodes ...content.WordNode) ConfigOption {
	return func(cfg *testConfig) {
		cfg.nodes = nodes
	}
}

// WithClasses replaces the dictionary classes.
func WithClasses(classes map[string]string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.classes = classes
	}
}

func WithCaseSensitive(caseSensitive bool) ConfigOption {
	return func(cfg *testConfig) {
		cfg.caseSensitive = caseSensitive
	}
}

// SetupTestConfig creates a config file, a YAML content tree and a cache directory for testing.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := testConfig{
		nodes: DefaultNodes(),
		classes: map[string]string{
			"term":  ";description",
			"event": "title;summary",
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	contentPath := filepath.Join(tmpDir, "content.yml")
	require.NoError(t, content.WriteYamlFile(contentPath, content.Tree{Nodes: cfg.nodes}))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "cache"), 0755))

	classes := ""
	for class, spec := range cfg.classes {
		classes += fmt.Sprintf("    %s: %q\n", class, spec)
	}
	configContent := fmt.Sprintf(`dictionary:
  parent_nodes: [%d]
  classes:
%s  case_sensitive: %t
  omit_tags: [a, script, style, textarea, title]
cache:
  directory: %s
  path: dictionary
content:
  source: yaml
  file: %s
`,
		GlossaryNodeID,
		classes,
		cfg.caseSensitive,
		filepath.Join(tmpDir, "cache"),
		contentPath,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupBrokenConfig creates a config file which cannot be parsed.
func SetupBrokenConfig(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("dictionary: [[[\n"), 0644))
	return cfgPath
}
