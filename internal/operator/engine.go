package operator

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/at-ishikawa/keytip/internal/annotate"
	"github.com/at-ishikawa/keytip/internal/config"
	"github.com/at-ishikawa/keytip/internal/content"
	"github.com/at-ishikawa/keytip/internal/dictionary"
)

// Engine annotates operator values with the dictionary built from the content tree.
// An Engine has no mutable state of its own and can be shared between goroutines.
type Engine struct {
	settings  config.DictionaryConfig
	specs     dictionary.ClassSpecs
	source    content.Source
	cache     *dictionary.FingerprintCache
	builder   *dictionary.Builder
	annotator *annotate.Annotator
	logger    *slog.Logger
}

type engineOptions struct {
	logger      *slog.Logger
	diagnostics dictionary.Diagnostics
	registerer  prometheus.Registerer
}

type Option func(*engineOptions)

func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithDiagnostics sends dictionary build diagnostics to d instead of the logger.
func WithDiagnostics(d dictionary.Diagnostics) Option {
	return func(o *engineOptions) {
		o.diagnostics = d
	}
}

// WithRegisterer registers the dictionary cache metrics.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *engineOptions) {
		o.registerer = reg
	}
}

func NewEngine(cfg *config.Config, source content.Source, renderer annotate.TooltipRenderer, opts ...Option) (*Engine, error) {
	options := engineOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.diagnostics == nil {
		options.diagnostics = dictionary.NewLogDiagnostics(options.logger)
	}
	if renderer == nil {
		return nil, dictionary.NewError(dictionary.KindConstruction, "tooltip renderer is required")
	}

	specs := dictionary.ParseClassSpecs(cfg.Dictionary.Classes)
	cache, err := dictionary.NewFingerprintCache(
		source,
		cfg.Dictionary.ParentNodes,
		specs.Classes(),
		cfg.Cache.FullPath(),
		dictionary.WithCacheLogger(options.logger),
		dictionary.WithCacheMetrics(dictionary.NewCacheMetrics(options.registerer)),
	)
	if err != nil {
		return nil, fmt.Errorf("dictionary.NewFingerprintCache > %w", err)
	}

	return &Engine{
		settings:  cfg.Dictionary,
		specs:     specs,
		source:    source,
		cache:     cache,
		builder:   dictionary.NewBuilder(specs, options.diagnostics),
		annotator: annotate.New(renderer, annotate.WithLogger(options.logger)),
		logger:    options.logger,
	}, nil
}

func (e *Engine) Cache() *dictionary.FingerprintCache {
	return e.cache
}

func (e *Engine) Settings() config.DictionaryConfig {
	return e.settings
}

// Dictionary returns the dictionary of the current content, building it on a cache miss.
func (e *Engine) Dictionary(ctx context.Context) (*dictionary.Mapping, error) {
	return e.cache.GetOrBuild(ctx, e.build)
}

func (e *Engine) Builder() *dictionary.Builder {
	return e.builder
}

// Nodes returns the word nodes of the configured parents and classes.
func (e *Engine) Nodes(ctx context.Context) ([]content.WordNode, error) {
	nodes, err := e.source.ListNodes(ctx, e.settings.ParentNodes, e.specs.Classes())
	if err != nil {
		return nil, fmt.Errorf("source.ListNodes > %w", err)
	}
	return nodes, nil
}

func (e *Engine) build(ctx context.Context) (*dictionary.Mapping, error) {
	nodes, err := e.Nodes(ctx)
	if err != nil {
		return nil, err
	}
	mapping, err := e.builder.Build(nodes)
	if err != nil {
		return nil, fmt.Errorf("builder.Build > %w", err)
	}
	return mapping, nil
}

// Apply annotates the invocation value. It never fails: when the dictionary cannot be
// loaded the value is returned as is.
func (e *Engine) Apply(ctx context.Context, inv *Invocation) string {
	caseSensitive, err := inv.Bool(ParamCaseSensitive)
	if err != nil {
		e.logger.Warn("invalid case sensitivity parameter, using the configured value",
			slog.Bool("case_sensitive", e.settings.CaseSensitive),
			slog.Any("error", err),
		)
		caseSensitive = e.settings.CaseSensitive
	}

	mapping, err := e.Dictionary(ctx)
	if err != nil {
		e.logger.Error("failed to load the dictionary, leaving the value unannotated",
			slog.Any("error", err),
		)
		return inv.Value()
	}
	return e.annotator.Annotate(inv.Value(), mapping, caseSensitive, e.settings.OmitTags)
}

// Modify runs the operator on value. params override the defaults of NamedParameterList.
func (e *Engine) Modify(ctx context.Context, value any, params map[string]any) (string, error) {
	merged := NamedParameterList(e.settings)
	maps.Copy(merged, params)

	inv, err := NewInvocation(value, merged)
	if err != nil {
		return "", err
	}
	return e.Apply(ctx, inv), nil
}
