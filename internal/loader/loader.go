// Package loader fetches the catalog documents with a remote-then-local fallback.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/models"
	"github.com/shard-legends/codex-service/internal/storage"
	"github.com/shard-legends/codex-service/pkg/metrics"
)

const (
	cacheKeyPrefix = "codex:doc:"
	maxBodyBytes   = 32 << 20
)

// Config describes the document origins
type Config struct {
	RemoteURL      string
	LocalDir       string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
}

// Loader loads a complete Dataset. It is safe for concurrent use.
type Loader struct {
	cfg     Config
	client  *http.Client
	cache   storage.CacheInterface
	metrics storage.MetricsInterface
	logger  *zap.Logger
	now     func() time.Time
}

// Option customises a Loader
type Option func(*Loader)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithCache enables caching of remote document bodies
func WithCache(c storage.CacheInterface, m storage.MetricsInterface) Option {
	return func(l *Loader) {
		l.cache = c
		l.metrics = m
	}
}

// New creates a loader
func New(cfg Config, logger *zap.Logger, opts ...Option) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	l := &Loader{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger.Named("loader"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type fetched struct {
	data   []byte
	format format
	origin string
}

// Load fetches every document. The items document is mandatory: when neither origin
// provides it a *LoadError is returned. Optional documents that cannot be fetched or
// decoded are left empty and reported with origin "none".
func (l *Loader) Load(ctx context.Context) (*models.Dataset, error) {
	ds := &models.Dataset{
		Skipped: make(map[string]int),
		Origins: make(map[string]string),
	}

	var (
		items   []models.Item
		recipes []models.Recipe
		skipped int
	)
	origin, err := l.fetchDecoded(ctx, models.DocumentItems, func(b []byte, f format) (err error) {
		items, recipes, skipped, err = decodeItems(b, f)
		return
	})
	if err != nil {
		return nil, err
	}
	ds.Items, ds.Recipes = items, recipes
	l.record(ds, models.DocumentItems, origin, skipped)

	optional := []struct {
		name   string
		decode func([]byte, format) (int, error)
	}{
		{models.DocumentMarket, func(b []byte, f format) (n int, err error) {
			ds.Market, n, err = decodeMarket(b, f)
			return
		}},
		{models.DocumentWiki, func(b []byte, f format) (n int, err error) {
			ds.Wiki, n, err = decodeWiki(b, f)
			return
		}},
		{models.DocumentSources, func(b []byte, f format) (n int, err error) {
			ds.Sources, n, err = decodeSources(b, f)
			return
		}},
		{models.DocumentQuests, func(b []byte, f format) (n int, err error) {
			ds.Quests, n, err = decodeQuests(b, f)
			return
		}},
	}

	for _, o := range optional {
		var n int
		decode := o.decode
		origin, err := l.fetchDecoded(ctx, o.name, func(b []byte, f format) (err error) {
			n, err = decode(b, f)
			return
		})
		if err != nil {
			l.logger.Warn("Optional document unavailable", zap.String("document", o.name), zap.Error(err))
			ds.Origins[o.name] = models.OriginNone
			continue
		}
		l.record(ds, o.name, origin, n)
	}

	ds.LoadedAt = l.now().UTC()
	return ds, nil
}

func (l *Loader) record(ds *models.Dataset, name, origin string, skipped int) {
	ds.Origins[name] = origin
	if skipped > 0 {
		ds.Skipped[name] = skipped
		metrics.RecordMalformedEntries(name, skipped)
		l.logger.Warn("Skipped malformed entries", zap.String("document", name), zap.Int("count", skipped))
	}
}

// fetchDecoded fetches name and runs decode over the body. A body that fails to
// decode is evicted and the document is fetched once more from the origins after
// the one that served it.
func (l *Loader) fetchDecoded(ctx context.Context, name string, decode func([]byte, format) error) (string, error) {
	doc, err := l.fetch(ctx, name, "")
	if err != nil {
		return "", err
	}
	decodeErr := decode(doc.data, doc.format)
	if decodeErr == nil {
		return doc.origin, nil
	}
	l.evict(ctx, name, doc.origin)
	if doc.origin == models.OriginLocal {
		return "", errors.Wrapf(decodeErr, "%s document from %s", name, doc.origin)
	}

	l.logger.Warn("Malformed document, trying next origin",
		zap.String("document", name), zap.String("origin", doc.origin), zap.Error(decodeErr))

	retry, err := l.fetch(ctx, name, doc.origin)
	if err != nil {
		return "", errors.Wrapf(decodeErr, "%s document from %s", name, doc.origin)
	}
	if err := decode(retry.data, retry.format); err != nil {
		l.evict(ctx, name, retry.origin)
		return "", errors.Wrapf(err, "%s document from %s", name, retry.origin)
	}
	return retry.origin, nil
}

// fetch tries the cache, then the remote URL, then the local directory. Origins up
// to and including after are skipped.
func (l *Loader) fetch(ctx context.Context, name, after string) (*fetched, error) {
	if after == "" {
		if doc := l.fromCache(ctx, name); doc != nil {
			return doc, nil
		}
	}

	remoteErr := ErrDocumentUnavailable
	if l.cfg.RemoteURL != "" && after != models.OriginRemote {
		start := time.Now()
		data, err := l.fetchRemote(ctx, name)
		if err == nil {
			metrics.RecordDocumentFetch(name, models.OriginRemote, "success", time.Since(start).Seconds())
			l.toCache(ctx, name, data)
			return &fetched{data: data, format: formatJSON, origin: models.OriginRemote}, nil
		}
		metrics.RecordDocumentFetch(name, models.OriginRemote, "error", time.Since(start).Seconds())
		l.logger.Warn("Remote fetch failed, falling back to local copy", zap.String("document", name), zap.Error(err))
		remoteErr = err
	}

	localErr := ErrDocumentUnavailable
	if l.cfg.LocalDir != "" {
		start := time.Now()
		data, f, err := l.readLocal(name)
		if err == nil {
			metrics.RecordDocumentFetch(name, models.OriginLocal, "success", time.Since(start).Seconds())
			return &fetched{data: data, format: f, origin: models.OriginLocal}, nil
		}
		metrics.RecordDocumentFetch(name, models.OriginLocal, "error", time.Since(start).Seconds())
		localErr = err
	}

	return nil, &LoadError{Document: name, Remote: remoteErr, Local: localErr}
}

func (l *Loader) fetchRemote(ctx context.Context, name string) ([]byte, error) {
	url := strings.TrimRight(l.cfg.RemoteURL, "/") + "/" + name + ".json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Wrapf(ErrDocumentUnavailable, "GET %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", url)
	}
	return data, nil
}

var localExtensions = []struct {
	ext    string
	format format
}{
	{".json", formatJSON},
	{".yaml", formatYAML},
	{".yml", formatYAML},
}

func (l *Loader) readLocal(name string) ([]byte, format, error) {
	for _, candidate := range localExtensions {
		path := filepath.Join(l.cfg.LocalDir, name+candidate.ext)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, candidate.format, nil
		}
		if !os.IsNotExist(err) {
			return nil, formatJSON, errors.Wrapf(err, "failed to read %s", path)
		}
	}
	return nil, formatJSON, errors.Wrapf(ErrDocumentUnavailable, "no local copy of %s in %s", name, l.cfg.LocalDir)
}

func cacheKey(name string) string {
	return fmt.Sprintf("%s%s", cacheKeyPrefix, name)
}

func (l *Loader) fromCache(ctx context.Context, name string) *fetched {
	if l.cache == nil {
		return nil
	}
	body, err := l.cache.Get(ctx, cacheKey(name))
	if err != nil {
		l.logger.Warn("Document cache read failed", zap.String("document", name), zap.Error(err))
		return nil
	}
	if body == "" {
		if l.metrics != nil {
			l.metrics.IncCacheMiss(l.cache.Backend())
		}
		return nil
	}
	if l.metrics != nil {
		l.metrics.IncCacheHit(l.cache.Backend())
	}
	metrics.RecordDocumentFetch(name, models.OriginCache, "success", 0)
	return &fetched{data: []byte(body), format: formatJSON, origin: models.OriginCache}
}

func (l *Loader) toCache(ctx context.Context, name string, data []byte) {
	if l.cache == nil || l.cfg.CacheTTL <= 0 {
		return
	}
	if err := l.cache.Set(ctx, cacheKey(name), string(data), l.cfg.CacheTTL); err != nil {
		l.logger.Warn("Document cache write failed", zap.String("document", name), zap.Error(err))
	}
}

// evict drops a cached body that failed to decode
func (l *Loader) evict(ctx context.Context, name, origin string) {
	if l.cache == nil || origin == models.OriginLocal {
		return
	}
	if err := l.cache.Del(ctx, cacheKey(name)); err != nil {
		l.logger.Warn("Document cache delete failed", zap.String("document", name), zap.Error(err))
	}
}

// Invalidate removes every cached document body
func (l *Loader) Invalidate(ctx context.Context) error {
	if l.cache == nil {
		return nil
	}
	for _, name := range Documents() {
		if err := l.cache.Del(ctx, cacheKey(name)); err != nil {
			return errors.Wrapf(err, "failed to invalidate %s", name)
		}
	}
	return nil
}

// Documents lists the document names in load order
func Documents() []string {
	return []string{
		models.DocumentItems,
		models.DocumentMarket,
		models.DocumentWiki,
		models.DocumentSources,
		models.DocumentQuests,
	}
}
