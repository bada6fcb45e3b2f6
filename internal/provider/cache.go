package provider

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/sailgate/sailgate/internal/marine"
)

// Freshness classifies a cache entry's age relative to the two TTL tiers.
type Freshness int

const (
	// Fresh entries are young enough to serve without contacting a provider.
	Fresh Freshness = iota
	// Stale entries are past the freshness TTL but still usable as a last
	// resort when every provider fails.
	Stale
)

// CacheKey identifies one cached forecast request.
type CacheKey struct {
	Scope string
	Lat   float64
	Lon   float64
	Hours int
}

// Digest returns a stable hash of the key, so identical requests map to
// the same storage slot across process restarts.
func (k CacheKey) Digest() string {
	raw := fmt.Sprintf("%s:%.4f:%.4f:%d", k.Scope, k.Lat, k.Lon, k.Hours)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// CacheEntry is a loaded cache record with its freshness tier.
type CacheEntry struct {
	Points    []marine.ForecastPoint
	Freshness Freshness
	FetchedAt time.Time
}

// DiskCacheConfig configures a DiskCache.
type DiskCacheConfig struct {
	// Root is the cache directory, created if missing.
	Root string

	// TTL is the freshness window. Default: 30 minutes.
	TTL time.Duration

	// StaleTTL is the absolute discard threshold. Default: 3 hours.
	StaleTTL time.Duration

	// Clock is the time source; tests inject a fake for deterministic
	// freshness checks. Default: real clock.
	Clock clockwork.Clock

	// Logger for cache operations.
	Logger zerolog.Logger
}

// DiskCache stores one JSON file per cache key digest, each holding the
// write timestamp and the serialized point list.
type DiskCache struct {
	root     string
	ttl      time.Duration
	staleTTL time.Duration
	clock    clockwork.Clock
	logger   zerolog.Logger
}

type cachePayload struct {
	FetchedAt time.Time              `json:"fetched_at"`
	Points    []marine.ForecastPoint `json:"points"`
}

// NewDiskCache creates the cache directory and returns a ready cache.
func NewDiskCache(cfg DiskCacheConfig) (*DiskCache, error) {
	if cfg.TTL == 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.StaleTTL == 0 {
		cfg.StaleTTL = 3 * time.Hour
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &DiskCache{
		root:     cfg.Root,
		ttl:      cfg.TTL,
		staleTTL: cfg.StaleTTL,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
	}, nil
}

// Load returns the cached entry for the key, or nil on a miss. Entries
// older than the stale TTL and unreadable files count as misses, never as
// errors.
func (c *DiskCache) Load(key CacheKey) *CacheEntry {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var payload cachePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("discarding unreadable cache entry")
		return nil
	}

	age := c.clock.Now().Sub(payload.FetchedAt)
	if age > c.staleTTL {
		return nil
	}

	freshness := Stale
	if age <= c.ttl {
		freshness = Fresh
	}
	return &CacheEntry{
		Points:    payload.Points,
		Freshness: freshness,
		FetchedAt: payload.FetchedAt,
	}
}

// Save overwrites the entry for the key, recording the write time. The
// payload is written to a temp file and renamed so concurrent readers
// never observe a partial entry.
func (c *DiskCache) Save(key CacheKey, points []marine.ForecastPoint) error {
	payload := cachePayload{
		FetchedAt: c.clock.Now().UTC(),
		Points:    points,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	path := c.path(key)
	tmp, err := os.CreateTemp(c.root, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("creating cache temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing cache temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publishing cache entry: %w", err)
	}
	return nil
}

// Purge removes every entry older than the stale TTL.
func (c *DiskCache) Purge() {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(c.root, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var payload cachePayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			os.Remove(path)
			removed++
			continue
		}
		if c.clock.Now().Sub(payload.FetchedAt) > c.staleTTL {
			os.Remove(path)
			removed++
		}
	}
	if removed > 0 {
		c.logger.Debug().Int("removed", removed).Msg("purged expired cache entries")
	}
}

func (c *DiskCache) path(key CacheKey) string {
	return filepath.Join(c.root, key.Digest()+".json")
}
