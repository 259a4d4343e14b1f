package iofetch

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/gnfmt"

	"github.com/Fr4nzz/ithomiini-maps/pkg/config"
)

const keyCacheFile = "gbif_taxon_keys.json"

// keyCache is the on-disk cache of resolved taxon keys. Keys change
// rarely, so the cache is reused until it goes stale.
type keyCache struct {
	FetchedAt time.Time      `json:"fetchedAt"`
	Keys      map[string]int `json:"keys"`
}

func (g *gbif) keyCachePath() string {
	return filepath.Join(config.CacheDir(g.cfg.HomeDir), keyCacheFile)
}

// loadKeyCache returns the cached taxon keys, or nil when the cache is
// missing or stale.
func (g *gbif) loadKeyCache() (map[string]int, error) {
	path := g.keyCachePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, CacheError(path, err)
	}

	var cache keyCache
	if err := g.enc.Decode(data, &cache); err != nil {
		// corrupted cache is not fatal, refetch
		slog.Warn("Ignoring unreadable taxon key cache", "path", path)
		return nil, nil
	}

	if staleCache(cache.FetchedAt, time.Now(), g.cfg.Fetch.CacheDays) {
		slog.Info("Taxon key cache is stale, refetching", "path", path)
		return nil, nil
	}

	slog.Info("Using cached taxon keys",
		"path", path, "taxa", len(cache.Keys))
	return cache.Keys, nil
}

func (g *gbif) saveKeyCache(keys map[string]int) error {
	path := g.keyCachePath()
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(keyCache{FetchedAt: time.Now(), Keys: keys})
	if err != nil {
		return CacheError(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return CacheError(path, err)
	}
	return nil
}

func staleCache(fetchedAt, now time.Time, maxDays int) bool {
	if fetchedAt.IsZero() {
		return true
	}
	return now.Sub(fetchedAt) > time.Duration(maxDays)*24*time.Hour
}
