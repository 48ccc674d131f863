// Package config provides configuration loading and structs for the khoj server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Translit  TranslitConfig  `yaml:"transliteration"`
	Normalize NormalizeConfig `yaml:"normalize"`
	Search    SearchConfig    `yaml:"search"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Expand    ExpandConfig    `yaml:"expand"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CatalogConfig holds paths for the product store and indexes.
type CatalogConfig struct {
	DatabasePath    string `yaml:"database_path"`
	BleveIndexPath  string `yaml:"bleve_index_path"`
	VectorIndexPath string `yaml:"vector_index_path"`
	WatchCatalog    bool   `yaml:"watch_catalog"`
}

// EmbeddingConfig holds embedding provider settings. Provider is one of
// "http" (remote joint image-text model), "onnx" (local model, requires CGO),
// or "mock" (deterministic, for tests and development).
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`
	Endpoint   string `yaml:"endpoint"`
	ModelID    string `yaml:"model_id"`
	ModelPath  string `yaml:"model_path"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
	CacheSize  int    `yaml:"cache_size"`
	TimeoutMS  int    `yaml:"timeout_ms"`
}

// TranslitConfig holds transliteration service settings. An empty endpoint
// disables transliteration entirely (pass-through).
type TranslitConfig struct {
	Endpoint  string `yaml:"endpoint"`
	TimeoutMS int    `yaml:"timeout_ms"`
	CacheSize int    `yaml:"cache_size"`
}

// NormalizeConfig holds URL expansion settings for the normalizer.
type NormalizeConfig struct {
	MaxRedirectHops int `yaml:"max_redirect_hops"`
	HopTimeoutMS    int `yaml:"hop_timeout_ms"`
	CacheSize       int `yaml:"cache_size"`
}

// SearchConfig holds retrieval settings.
type SearchConfig struct {
	TopKCandidates  int `yaml:"top_k_candidates"`
	DefaultLimit    int `yaml:"default_limit"`
	MaxLimit        int `yaml:"max_limit"`
	VectorTimeoutMS int `yaml:"vector_timeout_ms"`
}

// ScoringConfig holds the fusion weights and thresholds. The defaults are
// empirically tuned; treat them as starting points, not invariants.
type ScoringConfig struct {
	VisualWeight        float64 `yaml:"visual_weight"`
	KeywordWeight       float64 `yaml:"keyword_weight"`
	CategoryPenalty     float64 `yaml:"category_penalty"`
	ExactMatchThreshold float64 `yaml:"exact_match_threshold"`
	BrandBonus          float64 `yaml:"brand_bonus"`
	NameOverlapBonus    float64 `yaml:"name_overlap_bonus"`
	NameOverlapMin      float64 `yaml:"name_overlap_min"`
	ConsensusQuorum     int     `yaml:"consensus_quorum"`
	ConsensusTopN       int     `yaml:"consensus_top_n"`
}

// ExpandConfig holds synonym expansion settings.
type ExpandConfig struct {
	MaxSynonyms int `yaml:"max_synonyms"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Catalog.DatabasePath = expandPath(cfg.Catalog.DatabasePath, configDir)
	cfg.Catalog.BleveIndexPath = expandPath(cfg.Catalog.BleveIndexPath, configDir)
	cfg.Catalog.VectorIndexPath = expandPath(cfg.Catalog.VectorIndexPath, configDir)
	if cfg.Embedding.ModelPath != "" {
		cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
