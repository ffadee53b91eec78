package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTooltipRenderer(t *testing.T) {
	tests := []struct {
		name         string
		templatePath func(t *testing.T) string

		wantTemplateName string
		term             string
		description      string
		want             string
	}{
		{
			name: "uses filesystem template when available",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "custom.html.tmpl")
				content := `<abbr title="{{ .Description }}">{{ .Term }}</abbr>`
				require.NoError(t, os.WriteFile(templatePath, []byte(content), 0644))
				return templatePath
			},
			wantTemplateName: "custom.html.tmpl",
			term:             "Fox",
			description:      "A wild animal",
			want:             `<abbr title="A wild animal">Fox</abbr>`,
		},
		{
			name: "uses embedded template when file doesn't exist",
			templatePath: func(t *testing.T) string {
				return "/non/existent/tooltip.html.tmpl"
			},
			wantTemplateName: "tooltip.html.tmpl",
			term:             "Fox",
			description:      "A <em>wild</em> animal",
			want:             `<span class="dictionary-tooltip" tabindex="0">Fox<span class="dictionary-tooltip-description" role="tooltip">A <em>wild</em> animal</span></span>`,
		},
		{
			name: "uses embedded template when the file is invalid",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "broken.html.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte(`{{ .Term `), 0644))
				return templatePath
			},
			wantTemplateName: "tooltip.html.tmpl",
			term:             "<Fox>",
			description:      "A wild animal",
			want:             `<span class="dictionary-tooltip" tabindex="0">&lt;Fox&gt;<span class="dictionary-tooltip-description" role="tooltip">A wild animal</span></span>`,
		},
		{
			name: "uses embedded template when no path is configured",
			templatePath: func(t *testing.T) string {
				return ""
			},
			wantTemplateName: "tooltip.html.tmpl",
			term:             "fox",
			description:      "A wild animal",
			want:             `<span class="dictionary-tooltip" tabindex="0">fox<span class="dictionary-tooltip-description" role="tooltip">A wild animal</span></span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, err := NewTooltipRenderer(tt.templatePath(t))
			require.NoError(t, err)
			assert.Equal(t, tt.wantTemplateName, renderer.tmpl.Name())

			got, err := renderer.Render(tt.term, tt.description)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
