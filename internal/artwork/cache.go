package artwork

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/singleflight"

	"cinelookup/internal/config"
	"cinelookup/internal/fileutil"
	"cinelookup/internal/logging"
	"cinelookup/internal/services"
)

// Kind selects the image role and its filename prefix.
type Kind string

const (
	KindPoster   Kind = "poster"
	KindBackdrop Kind = "backdrop"
	KindPerson   Kind = "person"
)

const (
	lockFileName     = ".cinelookup.lock"
	maxImageBytes    = 32 << 20
	lockRetryDelay   = 50 * time.Millisecond
	defaultPosterSz  = "w500"
	defaultBackdrop  = "w780"
	defaultProfileSz = "w185"
)

// Cache downloads and serves artwork files.
type Cache struct {
	enabled      bool
	dir          string
	imageBaseURL string
	sizes        map[Kind]string
	httpClient   *http.Client
	logger       *slog.Logger
	group        singleflight.Group
}

// Option configures a Cache.
type Option func(*Cache)

// WithHTTPClient overrides the download client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Cache) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logging.NewComponentLogger(logger, "artwork")
	}
}

// WithSize overrides the CDN size segment used for kind.
func WithSize(kind Kind, size string) Option {
	return func(c *Cache) {
		if size = strings.TrimSpace(size); size != "" {
			c.sizes[kind] = size
		}
	}
}

// WithDisabled turns the cache off; every fetch reports ErrArtworkUnavailable.
func WithDisabled() Option {
	return func(c *Cache) { c.enabled = false }
}

// New returns an enabled cache storing files under dir.
func New(dir, imageBaseURL string, opts ...Option) *Cache {
	c := &Cache{
		enabled:      true,
		dir:          dir,
		imageBaseURL: strings.TrimRight(strings.TrimSpace(imageBaseURL), "/"),
		sizes: map[Kind]string{
			KindPoster:   defaultPosterSz,
			KindBackdrop: defaultBackdrop,
			KindPerson:   defaultProfileSz,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logging.NewComponentLogger(nil, "artwork"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig builds a cache from the [artwork] and [tmdb] settings.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Cache {
	opts := []Option{
		WithLogger(logger),
		WithHTTPClient(&http.Client{Timeout: cfg.ArtworkDownloadTimeout()}),
		WithSize(KindPoster, cfg.Artwork.PosterSize),
		WithSize(KindBackdrop, cfg.Artwork.BackdropSize),
		WithSize(KindPerson, cfg.Artwork.ProfileSize),
	}
	if !cfg.Artwork.Enabled {
		opts = append(opts, WithDisabled())
	}
	return New(cfg.Artwork.Dir, cfg.TMDB.ImageBaseURL, opts...)
}

// Enabled reports whether downloads are allowed.
func (c *Cache) Enabled() bool { return c != nil && c.enabled }

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// FileName returns the cache file name for an image, or "" when remotePath
// has no usable basename.
func FileName(kind Kind, ownerID int64, remotePath string) string {
	base := path.Base(strings.TrimSpace(remotePath))
	if base == "" || base == "." || base == "/" || base == ".." {
		return ""
	}
	return string(kind) + "_" + strconv.FormatInt(ownerID, 10) + "_" + base
}

// FetchOrDownload returns the local path for an image, downloading it when
// it is not cached yet. Concurrent callers for the same file share one
// download that keeps running when a caller gives up, so a late file still
// lands in the cache. Any failure yields ErrArtworkUnavailable; callers show
// a placeholder.
func (c *Cache) FetchOrDownload(ctx context.Context, kind Kind, ownerID int64, remotePath string) (string, error) {
	if !c.Enabled() {
		return "", services.Wrap(services.ErrArtworkUnavailable, "artwork", "fetch", "cache disabled", nil)
	}
	name := FileName(kind, ownerID, remotePath)
	if name == "" || ownerID <= 0 {
		return "", services.Wrap(services.ErrArtworkUnavailable, "artwork", "fetch", "no image path", nil)
	}
	target := filepath.Join(c.dir, name)
	if cached(target) {
		return target, nil
	}

	// The shared download outlives any single waiter; the http client
	// timeout bounds it.
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(name, func() (any, error) {
		if cached(target) {
			return target, nil
		}
		return target, c.download(detached, kind, remotePath, target)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			logging.WithContext(ctx, c.logger).Debug("artwork download shared", logging.String("file", name))
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", services.Wrap(services.ErrArtworkUnavailable, "artwork", "fetch", "wait cancelled", ctx.Err())
	}
}

func (c *Cache) download(ctx context.Context, kind Kind, remotePath, target string) error {
	logger := logging.WithContext(ctx, c.logger)
	if c.imageBaseURL == "" {
		return services.Wrap(services.ErrArtworkUnavailable, "artwork", "download", "image base url not configured", nil)
	}
	url := c.imageBaseURL + "/" + c.sizes[kind] + "/" + strings.TrimLeft(remotePath, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return services.Wrap(services.ErrArtworkUnavailable, "artwork", "download", "build request", err)
	}
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(logger, "execute request", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return c.fail(logger, fmt.Sprintf("image cdn returned %d", resp.StatusCode), nil)
	}

	lock := flock.New(filepath.Join(c.dir, lockFileName))
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return c.fail(logger, "create cache directory", err)
	}
	ok, err := lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil || !ok {
		return c.fail(logger, "acquire cache lock", err)
	}
	defer func() { _ = lock.Unlock() }()

	written, err := fileutil.WriteAtomic(target, io.LimitReader(resp.Body, maxImageBytes), 0o644)
	if err != nil {
		return c.fail(logger, "write image", err)
	}
	if written == 0 {
		_ = os.Remove(target)
		return c.fail(logger, "empty image body", nil)
	}
	logger.Debug("artwork downloaded",
		logging.String("file", filepath.Base(target)),
		logging.Int64("bytes", written),
		logging.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (c *Cache) fail(logger *slog.Logger, message string, err error) error {
	wrapped := services.Wrap(services.ErrArtworkUnavailable, "artwork", "download", message, err)
	logger.Info("artwork unavailable", logging.Error(wrapped), logging.String(logging.FieldImpact, "placeholder shown"))
	return wrapped
}

func cached(target string) bool {
	info, err := os.Stat(target)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}

// ClearStats summarizes a ClearAll run.
type ClearStats struct {
	Count      int
	FreedBytes int64
	FreedMB    float64
}

// Stats describes the cache directory.
type Stats struct {
	Dir       string
	Count     int
	Bytes     int64
	SizeMB    float64
	FreeBytes uint64
}

var recognizedPrefixes = []string{"poster_", "backdrop_", "person_", "movie_", "tv_"}

func recognized(name string) bool {
	lower := strings.ToLower(name)
	ext := filepath.Ext(lower)
	if ext != ".jpg" && ext != ".png" {
		return false
	}
	for _, prefix := range recognizedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// ClearAll deletes every recognized image file and reports what was freed.
// Other files in the directory are left alone. A missing or empty directory
// yields zero stats.
func (c *Cache) ClearAll(ctx context.Context) (ClearStats, error) {
	var stats ClearStats
	if _, err := os.Stat(c.dir); errors.Is(err, fs.ErrNotExist) {
		return stats, nil
	}

	lock := flock.New(filepath.Join(c.dir, lockFileName))
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return stats, fmt.Errorf("lock artwork cache: %w", err)
	}
	if !ok {
		return stats, errors.New("artwork cache is busy")
	}
	defer func() { _ = lock.Unlock() }()

	err = c.walk(func(path string, info fs.FileInfo) {
		if rmErr := os.Remove(path); rmErr != nil {
			c.logger.Warn("remove cached artwork failed", logging.String("path", path), logging.Error(rmErr))
			return
		}
		stats.Count++
		stats.FreedBytes += info.Size()
	})
	if err != nil {
		return stats, err
	}
	if _, err := fileutil.RemoveTemps(c.dir); err != nil {
		c.logger.Debug("remove temp files failed", logging.Error(err))
	}
	stats.FreedMB = bytesToMB(stats.FreedBytes)
	logging.WithContext(ctx, c.logger).Info("artwork cache cleared",
		logging.Int("files", stats.Count),
		logging.Float64("freed_mb", stats.FreedMB),
	)
	return stats, nil
}

// Stats counts recognized files and reports free space on the cache volume.
func (c *Cache) Stats(_ context.Context) (Stats, error) {
	stats := Stats{Dir: c.dir}
	if _, err := os.Stat(c.dir); errors.Is(err, fs.ErrNotExist) {
		return stats, nil
	}
	err := c.walk(func(_ string, info fs.FileInfo) {
		stats.Count++
		stats.Bytes += info.Size()
	})
	if err != nil {
		return stats, err
	}
	stats.SizeMB = bytesToMB(stats.Bytes)
	free, err := freeBytes(c.dir)
	if err != nil {
		c.logger.Debug("statfs failed", logging.String("dir", c.dir), logging.Error(err))
	}
	stats.FreeBytes = free
	return stats, nil
}

func (c *Cache) walk(visit func(path string, info fs.FileInfo)) error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read artwork dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !recognized(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		visit(filepath.Join(c.dir, entry.Name()), info)
	}
	return nil
}

func bytesToMB(n int64) float64 {
	return float64(n) / (1024 * 1024)
}
