package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Catalog.DatabasePath == "" {
		cfg.Catalog.DatabasePath = "/usr/local/var/khoj/data/db/catalog.db"
	}
	if cfg.Catalog.BleveIndexPath == "" {
		cfg.Catalog.BleveIndexPath = "/usr/local/var/khoj/data/indices/bleve"
	}
	if cfg.Catalog.VectorIndexPath == "" {
		cfg.Catalog.VectorIndexPath = "/usr/local/var/khoj/data/indices/vectors.bin"
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "http"
	}
	if cfg.Embedding.ModelID == "" {
		cfg.Embedding.ModelID = "clip-vit-l-14"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 768
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 77
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Embedding.TimeoutMS == 0 {
		cfg.Embedding.TimeoutMS = 5000
	}
	if cfg.Translit.TimeoutMS == 0 {
		cfg.Translit.TimeoutMS = 3000
	}
	if cfg.Translit.CacheSize == 0 {
		cfg.Translit.CacheSize = 5000
	}
	if cfg.Normalize.MaxRedirectHops == 0 {
		cfg.Normalize.MaxRedirectHops = 5
	}
	if cfg.Normalize.HopTimeoutMS == 0 {
		cfg.Normalize.HopTimeoutMS = 800
	}
	if cfg.Normalize.CacheSize == 0 {
		cfg.Normalize.CacheSize = 2000
	}
	if cfg.Search.TopKCandidates == 0 {
		cfg.Search.TopKCandidates = 50
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 10
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Search.VectorTimeoutMS == 0 {
		cfg.Search.VectorTimeoutMS = 1000
	}
	if cfg.Scoring.VisualWeight == 0 {
		cfg.Scoring.VisualWeight = 0.5
	}
	if cfg.Scoring.KeywordWeight == 0 {
		cfg.Scoring.KeywordWeight = 0.3
	}
	if cfg.Scoring.CategoryPenalty == 0 {
		cfg.Scoring.CategoryPenalty = 0.05
	}
	if cfg.Scoring.ExactMatchThreshold == 0 {
		cfg.Scoring.ExactMatchThreshold = 0.70
	}
	if cfg.Scoring.BrandBonus == 0 {
		cfg.Scoring.BrandBonus = 0.30
	}
	if cfg.Scoring.NameOverlapBonus == 0 {
		cfg.Scoring.NameOverlapBonus = 0.25
	}
	if cfg.Scoring.NameOverlapMin == 0 {
		cfg.Scoring.NameOverlapMin = 0.6
	}
	if cfg.Scoring.ConsensusQuorum == 0 {
		cfg.Scoring.ConsensusQuorum = 2
	}
	if cfg.Scoring.ConsensusTopN == 0 {
		cfg.Scoring.ConsensusTopN = 5
	}
	if cfg.Expand.MaxSynonyms == 0 {
		cfg.Expand.MaxSynonyms = 3
	}
}
