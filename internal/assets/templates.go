package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

//go:embed templates/tooltip.html.tmpl
var fallbackTooltipTemplate string

const fallbackTooltipTemplateName = "tooltip.html.tmpl"

// Tooltip is the data passed to tooltip templates.
type Tooltip struct {
	// Term is the text matched in the document.
	Term string
	// Description is trusted markup maintained in the content tree.
	Description template.HTML
}

// TooltipRenderer renders tooltip markup with an html/template.
type TooltipRenderer struct {
	tmpl *template.Template
}

// NewTooltipRenderer parses the template at templatePath, falling back to the embedded
// template when templatePath is empty, missing or invalid.
func NewTooltipRenderer(templatePath string) (*TooltipRenderer, error) {
	tmpl, err := parseTemplateWithFallback(templatePath, fallbackTooltipTemplate)
	if err != nil {
		return nil, err
	}
	return &TooltipRenderer{tmpl: tmpl}, nil
}

func (r *TooltipRenderer) Render(term, description string) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, Tooltip{
		Term:        term,
		Description: template.HTML(description),
	}); err != nil {
		return "", fmt.Errorf("tmpl.Execute > %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func parseTemplateWithFallback(templatePath string, fallbackTemplate string) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackTooltipTemplateName).Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
