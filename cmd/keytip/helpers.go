package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/keytip/internal/assets"
	"github.com/at-ishikawa/keytip/internal/config"
	"github.com/at-ishikawa/keytip/internal/content"
	"github.com/at-ishikawa/keytip/internal/database"
	"github.com/at-ishikawa/keytip/internal/operator"
)

type SourceType string

func (s *SourceType) Set(val string) error {
	for _, sourceType := range allSourceTypes {
		if val == string(sourceType) {
			*s = sourceType
			return nil
		}
	}
	return fmt.Errorf("invalid source type: %s", val)
}

func (s SourceType) String() string {
	return string(s)
}

func (s *SourceType) Type() string {
	return "SourceType"
}

const (
	SourceTypeYAML  SourceType = "yaml"
	SourceTypeMySQL SourceType = "mysql"
)

var (
	_              pflag.Value = (*SourceType)(nil)
	allSourceTypes             = []SourceType{SourceTypeYAML, SourceTypeMySQL}
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openSource opens the content source. sourceType overrides the configured one when set.
// The returned function releases the source.
func openSource(ctx context.Context, cfg *config.Config, sourceType SourceType) (content.Source, func() error, error) {
	if sourceType == "" {
		sourceType = SourceType(cfg.Content.Source)
	}

	switch sourceType {
	case SourceTypeMySQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open > %w", err)
		}
		if err := database.Ping(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("database.Ping > %w", err)
		}
		return content.NewDBSource(db), db.Close, nil
	case SourceTypeYAML:
		return content.NewYAMLSource(cfg.Content.File), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported source type: %s", sourceType)
	}
}

// newEngine builds an engine from the configuration. Call the returned function when done.
func newEngine(ctx context.Context, cfg *config.Config, sourceType SourceType, opts ...operator.Option) (*operator.Engine, func() error, error) {
	renderer, err := assets.NewTooltipRenderer(cfg.Templates.TooltipTemplate)
	if err != nil {
		return nil, nil, fmt.Errorf("assets.NewTooltipRenderer > %w", err)
	}

	source, closeSource, err := openSource(ctx, cfg, sourceType)
	if err != nil {
		return nil, nil, err
	}

	engine, err := operator.NewEngine(cfg, source, renderer, opts...)
	if err != nil {
		_ = closeSource()
		return nil, nil, fmt.Errorf("operator.NewEngine > %w", err)
	}
	return engine, closeSource, nil
}
