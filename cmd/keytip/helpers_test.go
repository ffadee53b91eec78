package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/keytip/internal/config"
	"github.com/at-ishikawa/keytip/internal/testutil"
)

func TestSourceType_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    SourceType
		wantErr bool
	}{
		{
			name:  "yaml",
			value: "yaml",
			want:  SourceTypeYAML,
		},
		{
			name:  "mysql",
			value: "mysql",
			want:  SourceTypeMySQL,
		},
		{
			name:    "invalid source type",
			value:   "ldap",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sourceType SourceType
			err := sourceType.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid source type")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, sourceType)
		})
	}
}

func TestSourceType_String(t *testing.T) {
	sourceType := SourceTypeMySQL
	assert.Equal(t, "mysql", sourceType.String())
}

func TestSourceType_Type(t *testing.T) {
	sourceType := SourceTypeYAML
	assert.Equal(t, "SourceType", sourceType.Type())
}

func TestLoadConfig(t *testing.T) {
	oldConfigFile := configFile
	defer func() { configFile = oldConfigFile }()

	configFile = testutil.SetupTestConfig(t, t.TempDir())
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, []int64{testutil.GlossaryNodeID}, cfg.Dictionary.ParentNodes)

	configFile = testutil.SetupBrokenConfig(t, t.TempDir())
	_, err = loadConfig()
	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestOpenSource(t *testing.T) {
	cfg := &config.Config{
		Content: config.ContentConfig{Source: "yaml", File: "content.yml"},
	}

	source, closeSource, err := openSource(context.Background(), cfg, "")
	require.NoError(t, err)
	assert.NotNil(t, source)
	assert.NoError(t, closeSource())

	_, _, err = openSource(context.Background(), cfg, SourceType("ldap"))
	assert.ErrorContains(t, err, "unsupported source type: ldap")
}
