// Package file loads engine configuration from a TOML file.
package file

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Defaults applied to zero-valued settings.
const (
	DefaultCacheTTL      = 5 * time.Minute
	DefaultCandidatePool = 300
	DefaultTopK          = 5
)

// EngineConfig holds the tunable engine settings.
type EngineConfig struct {
	// SiteHost is the canonical site host used to classify absolute links
	// as internal. Empty means only root-relative links count.
	SiteHost string `toml:"site_host"`

	// CacheTTL is the intelligence cache entry lifetime.
	CacheTTL time.Duration `toml:"-"`

	// CacheTTLText is the TOML-facing duration string (e.g. "5m").
	CacheTTLText string `toml:"cache_ttl"`

	// CandidatePool bounds the similarity search pool.
	CandidatePool int `toml:"candidate_pool"`

	// TopK is the number of semantic matches returned.
	TopK int `toml:"top_k"`
}

// Default returns the configuration with all defaults applied.
func Default() EngineConfig {
	return EngineConfig{
		CacheTTL:      DefaultCacheTTL,
		CandidatePool: DefaultCandidatePool,
		TopK:          DefaultTopK,
	}
}

// Load reads engine configuration from the TOML file at path. A missing
// file yields the defaults. Zero or absent values fall back per field.
func Load(path string) (EngineConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	var loaded EngineConfig
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if loaded.SiteHost != "" {
		cfg.SiteHost = loaded.SiteHost
	}
	if loaded.CacheTTLText != "" {
		ttl, err := time.ParseDuration(loaded.CacheTTLText)
		if err != nil {
			return cfg, fmt.Errorf("parsing cache_ttl: %w", err)
		}
		if ttl > 0 {
			cfg.CacheTTL = ttl
		}
	}
	if loaded.CandidatePool > 0 {
		cfg.CandidatePool = loaded.CandidatePool
	}
	if loaded.TopK > 0 {
		cfg.TopK = loaded.TopK
	}

	return cfg, nil
}
