package dictionary

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/at-ishikawa/keytip/internal/content"
)

const cacheFileSuffix = ".cache"

var cacheFileName = regexp.MustCompile(`^[0-9a-f]{32}` + regexp.QuoteMeta(cacheFileSuffix) + `$`)

// FingerprintCache stores built dictionaries in files named after a fingerprint of the
// content they were built from, so a dictionary is only rebuilt when that content changes.
//
// Concurrent misses for the same fingerprint may rebuild and write the same file more than
// once. The last writer wins, which is fine because the build is deterministic.
type FingerprintCache struct {
	source    content.Source
	parentIDs []int64
	classes   []string
	rootDir   string
	logger    *slog.Logger
	metrics   *CacheMetrics
}

// CacheOption configures a FingerprintCache.
type CacheOption func(*FingerprintCache)

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *FingerprintCache) {
		c.logger = logger
	}
}

func WithCacheMetrics(metrics *CacheMetrics) CacheOption {
	return func(c *FingerprintCache) {
		c.metrics = metrics
	}
}

// NewFingerprintCache returns a cache for the dictionary scoped by parentIDs and classes.
// cacheDirectory is the full directory cache files are written to.
func NewFingerprintCache(source content.Source, parentIDs []int64, classes []string, cacheDirectory string, opts ...CacheOption) (*FingerprintCache, error) {
	if len(parentIDs) == 0 {
		return nil, NewError(KindConstruction, "list of parent nodes cannot be empty")
	}
	if source == nil {
		return nil, NewError(KindConstruction, "content source is required")
	}

	c := &FingerprintCache{
		source:    source,
		parentIDs: append([]int64(nil), parentIDs...),
		classes:   append([]string(nil), classes...),
		rootDir:   cacheDirectory,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewCacheMetrics(nil)
	}
	return c, nil
}

// Fingerprint identifies the current state of the dictionary content: the subtree
// modification time of every parent node in order, followed by the number of word nodes.
func (c *FingerprintCache) Fingerprint(ctx context.Context) (string, error) {
	parts := make([]string, 0, len(c.parentIDs)+1)
	for _, parentID := range c.parentIDs {
		modified, err := c.source.ModifiedSubnode(ctx, parentID)
		if err != nil {
			return "", fmt.Errorf("source.ModifiedSubnode(%d) > %w", parentID, err)
		}
		parts = append(parts, strconv.FormatInt(modified.Unix(), 10))
	}

	count, err := c.source.CountNodes(ctx, c.parentIDs, c.classes)
	if err != nil {
		return "", fmt.Errorf("source.CountNodes > %w", err)
	}
	parts = append(parts, strconv.Itoa(count))

	sum := md5.Sum([]byte(strings.Join(parts, "_")))
	return hex.EncodeToString(sum[:]), nil
}

// FilePath returns the cache file of a fingerprint.
func (c *FingerprintCache) FilePath(fingerprint string) string {
	return filepath.Join(c.rootDir, fingerprint+cacheFileSuffix)
}

// GetOrBuild returns the cached dictionary for the current fingerprint, calling build and
// storing its result on a miss. Unreadable entries are misses. A failed write is logged and
// the freshly built dictionary is still returned.
func (c *FingerprintCache) GetOrBuild(ctx context.Context, build func(ctx context.Context) (*Mapping, error)) (*Mapping, error) {
	fingerprint, err := c.Fingerprint(ctx)
	if err != nil {
		return nil, fmt.Errorf("c.Fingerprint > %w", err)
	}

	if mapping, err := c.read(fingerprint); err == nil {
		c.metrics.Hits.Inc()
		return mapping, nil
	} else if !os.IsNotExist(err) {
		c.logger.Debug("treating unreadable dictionary cache as a miss",
			slog.String("fingerprint", fingerprint),
			slog.Any("error", err),
		)
	}
	c.metrics.Misses.Inc()

	mapping, err := build(ctx)
	if err != nil {
		return nil, fmt.Errorf("build > %w", err)
	}

	if err := c.write(fingerprint, mapping); err != nil {
		c.metrics.WriteFailures.Inc()
		c.logger.Warn("failed to write the dictionary cache",
			slog.String("path", c.FilePath(fingerprint)),
			slog.Any("error", err),
		)
	}
	return mapping, nil
}

func (c *FingerprintCache) read(fingerprint string) (*Mapping, error) {
	contents, err := os.ReadFile(c.FilePath(fingerprint))
	if err != nil {
		return nil, err
	}
	mapping, err := decodeMapping(fingerprint, contents)
	if err != nil {
		return nil, WrapError(KindCache, err, "decode %s", c.FilePath(fingerprint))
	}
	return mapping, nil
}

func (c *FingerprintCache) write(fingerprint string, mapping *Mapping) error {
	contents, err := encodeMapping(fingerprint, mapping)
	if err != nil {
		return WrapError(KindCache, err, "encode dictionary")
	}
	if err := os.MkdirAll(c.rootDir, 0755); err != nil {
		return WrapError(KindCache, err, "os.MkdirAll(%s)", c.rootDir)
	}
	if err := atomic.WriteFile(c.FilePath(fingerprint), bytes.NewReader(contents)); err != nil {
		return WrapError(KindCache, err, "atomic.WriteFile(%s)", c.FilePath(fingerprint))
	}
	return nil
}

// Prune removes cache files of every fingerprint but the current one and returns their paths.
// Files which are not named after a fingerprint are kept. Cache entries are never expired otherwise.
func (c *FingerprintCache) Prune(ctx context.Context) ([]string, error) {
	fingerprint, err := c.Fingerprint(ctx)
	if err != nil {
		return nil, fmt.Errorf("c.Fingerprint > %w", err)
	}
	current := c.FilePath(fingerprint)

	files, err := filepath.Glob(filepath.Join(c.rootDir, "*"+cacheFileSuffix))
	if err != nil {
		return nil, fmt.Errorf("filepath.Glob > %w", err)
	}

	var removed []string
	for _, file := range files {
		if file == current || !cacheFileName.MatchString(filepath.Base(file)) {
			continue
		}
		if err := os.Remove(file); err != nil {
			return removed, WrapError(KindCache, err, "os.Remove(%s)", file)
		}
		removed = append(removed, file)
	}
	return removed, nil
}
