// Package main is the khoj CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bazaarlabs/khoj/internal/catalog"
	"github.com/bazaarlabs/khoj/internal/category"
	"github.com/bazaarlabs/khoj/internal/config"
	"github.com/bazaarlabs/khoj/internal/embedding"
	"github.com/bazaarlabs/khoj/internal/expand"
	"github.com/bazaarlabs/khoj/internal/features"
	"github.com/bazaarlabs/khoj/internal/keyword"
	"github.com/bazaarlabs/khoj/internal/language"
	"github.com/bazaarlabs/khoj/internal/metrics"
	"github.com/bazaarlabs/khoj/internal/models"
	"github.com/bazaarlabs/khoj/internal/normalize"
	"github.com/bazaarlabs/khoj/internal/scoring"
	"github.com/bazaarlabs/khoj/internal/search"
	"github.com/bazaarlabs/khoj/internal/server"
	"github.com/bazaarlabs/khoj/internal/spell"
	"github.com/bazaarlabs/khoj/internal/translit"
	"github.com/bazaarlabs/khoj/internal/vector"
	"github.com/bazaarlabs/khoj/internal/watcher"
	"github.com/bazaarlabs/khoj/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/khoj/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists it
// is used, so that "khoj server" from the project dir uses the project's config.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "import":
		runImport()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("khoj version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`khoj - multilingual product search

Usage:
  khoj server [-config path] [-debug]       start the HTTP API server
  khoj search [flags] <query text>          run a search
  khoj import [-config path] <catalog.xlsx> import a product catalog
  khoj status [-config path]                show catalog and index stats
  khoj version                              print version

Search flags:
  -server URL     query a running server (default http://localhost:8080,
                  empty = open the catalog directly)
  -image PATH     search by image instead of (or alongside) text
  -category NAME  restrict candidates to one category
  -top-k N        number of results (default 10)
  -output FORMAT  text or json (default text)`)
}

// components holds everything the pipeline needs, for commands that open the
// catalog directly instead of going through a running server.
type components struct {
	Pipeline *search.Pipeline
	Store    catalog.Store
	Vectors  vector.Index
	Names    keyword.Index
	Embedder embedding.Embedder
	Loader   *catalog.Loader
	Config   *config.Config
}

func (c *components) Close() {
	if c.Embedder != nil {
		c.Embedder.Close()
	}
	if c.Vectors != nil {
		_ = c.Vectors.Close()
	}
	if c.Names != nil {
		_ = c.Names.Close()
	}
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	embedder, err := embedding.NewFromConfig(cfg.Embedding, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize embedder: %w", err)
	}

	vectors, err := vector.NewMemoryIndex(cfg.Embedding.Dimensions)
	if err != nil {
		embedder.Close()
		return nil, fmt.Errorf("initialize vector index: %w", err)
	}
	if err := vectors.Load(cfg.Catalog.VectorIndexPath); err != nil {
		logger.Warn("vector index not loaded, will rebuild from catalog",
			zap.String("path", cfg.Catalog.VectorIndexPath), zap.Error(err))
	}

	names, err := keyword.NewBleveIndex(cfg.Catalog.BleveIndexPath)
	if err != nil {
		embedder.Close()
		_ = vectors.Close()
		return nil, fmt.Errorf("initialize keyword index: %w", err)
	}

	store, err := catalog.NewSQLiteStore(cfg.Catalog.DatabasePath)
	if err != nil {
		embedder.Close()
		_ = vectors.Close()
		_ = names.Close()
		return nil, fmt.Errorf("initialize catalog store: %w", err)
	}

	resolver := normalize.NewURLResolver(cfg.Normalize.MaxRedirectHops,
		time.Duration(cfg.Normalize.HopTimeoutMS)*time.Millisecond)

	pipeline := search.NewPipeline(search.Deps{
		Normalizer: normalize.NewNormalizer(resolver, cfg.Normalize.CacheSize, logger),
		Corrector:  spell.NewCorrector(),
		Languages:  language.NewDetector(),
		CodeMix:    language.NewCodeMixDetector(),
		Translit: translit.NewClient(cfg.Translit.Endpoint,
			time.Duration(cfg.Translit.TimeoutMS)*time.Millisecond, cfg.Translit.CacheSize, logger),
		Expander:   expand.NewExpander(cfg.Expand.MaxSynonyms),
		Extractor:  features.NewExtractor(),
		Embedder:   embedder,
		Vectors:    vectors,
		Names:      names,
		Store:      store,
		Categories: category.NewDetector(cfg.Scoring.ConsensusQuorum, cfg.Scoring.ConsensusTopN),
		Scorer:     scoring.NewHybridScorer(weightsFromConfig(cfg.Scoring)),
		Search:     cfg.Search,
		Logger:     logger,
	})

	return &components{
		Pipeline: pipeline,
		Store:    store,
		Vectors:  vectors,
		Names:    names,
		Embedder: embedder,
		Loader:   catalog.NewLoader(store, vectors, names, logger),
		Config:   cfg,
	}, nil
}

func weightsFromConfig(sc config.ScoringConfig) scoring.Weights {
	return scoring.Weights{
		Visual:              sc.VisualWeight,
		Keyword:             sc.KeywordWeight,
		CategoryPenalty:     sc.CategoryPenalty,
		ExactMatchThreshold: sc.ExactMatchThreshold,
		BrandBonus:          sc.BrandBonus,
		NameOverlapBonus:    sc.NameOverlapBonus,
		NameOverlapMin:      sc.NameOverlapMin,
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, loadedFrom, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("Starting khoj", zap.String("version", version), zap.String("config", loadedFrom))

	metrics.Register()

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer comps.Close()

	ctx := context.Background()
	if err := comps.Loader.Reload(ctx); err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	if cfg.Catalog.WatchCatalog {
		w := watcher.NewWatcher(cfg.Catalog.DatabasePath, func() {
			if err := comps.Loader.Reload(context.Background()); err != nil {
				logger.Error("Catalog reload failed", zap.Error(err))
			}
		}, logger)
		if err := w.Start(ctx); err != nil {
			logger.Error("Failed to start catalog watcher", zap.Error(err))
		} else {
			defer w.Stop()
		}
	}

	srv := server.NewServer(comps.Pipeline, comps.Store, &cfg.Server, logger)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		logger.Fatal("Server failed", zap.Error(err))
	case sig := <-sigCh:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	if err := comps.Vectors.Save(cfg.Catalog.VectorIndexPath); err != nil {
		logger.Error("Failed to save vector index", zap.Error(err))
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = open catalog directly)")
	imagePath := fs.String("image", "", "path to a query image")
	categoryHint := fs.String("category", "", "category hint")
	topK := fs.Int("top-k", 10, "number of results")
	output := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(reorderArgs(os.Args[2:]))

	queryText := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if queryText == "" && *imagePath == "" {
		fmt.Fprintln(os.Stderr, "Nothing to search: provide query text or -image")
		os.Exit(1)
	}

	req := &models.SearchRequest{Text: queryText, TopK: *topK, CategoryHint: *categoryHint}
	if *imagePath != "" {
		data, err := os.ReadFile(*imagePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read image: %v\n", err)
			os.Exit(1)
		}
		req.ImageData = data
	}

	var response *models.SearchResponse
	if *serverURL != "" {
		// Use the HTTP API when a server is running (avoids the Bleve/SQLite
		// lock conflict of opening the catalog twice).
		resp, err := searchViaHTTP(*serverURL, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		response = resp
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		comps, err := initializeComponents(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer comps.Close()
		if err := comps.Loader.Reload(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
			os.Exit(1)
		}
		response, err = comps.Pipeline.Search(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
	}

	if err := writeSearchResults(os.Stdout, response, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// reorderArgs moves flag tokens ahead of positional ones so that
// "khoj search red kurta -top-k 5" parses the same as
// "khoj search -top-k 5 red kurta".
func reorderArgs(args []string) []string {
	valueFlags := map[string]bool{
		"-config": true, "-server": true, "-image": true,
		"-category": true, "-top-k": true, "-output": true,
	}
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			name := strings.SplitN(strings.TrimPrefix(arg, "-"), "=", 2)[0]
			if valueFlags["-"+name] && !strings.Contains(arg, "=") && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
			continue
		}
		positional = append(positional, arg)
	}
	return append(flags, positional...)
}

func searchViaHTTP(serverURL string, req *models.SearchRequest) (*models.SearchResponse, error) {
	payload := map[string]interface{}{
		"text":          req.Text,
		"top_k":         req.TopK,
		"category_hint": req.CategoryHint,
	}
	if len(req.ImageData) > 0 {
		payload["image"] = base64.StdEncoding.EncodeToString(req.ImageData)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func writeSearchResults(w io.Writer, response *models.SearchResponse, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}
	if len(response.Results) == 0 {
		fmt.Fprintln(w, "No results.")
		return nil
	}
	for i, r := range response.Results {
		name := r.ProductID
		if r.Product != nil && r.Product.Name != "" {
			name = r.Product.Name
		}
		marker := " "
		if r.ExactMatch {
			marker = "*"
		}
		fmt.Fprintf(w, "%2d.%s %-40s %-14s %.4f\n", i+1, marker, utils.Truncate(name, 37), r.Category, r.FinalScore)
	}
	meta := response.Meta
	fmt.Fprintf(w, "\nlanguage=%s script=%s category=%s latency=%dms\n",
		meta.DetectedLanguage, meta.Script, meta.DetectedCategory, meta.TotalLatencyMS)
	return nil
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: khoj import [-config path] <catalog.xlsx>")
		os.Exit(1)
	}
	xlsxPath := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer comps.Close()

	products, err := catalog.ImportXLSX(xlsxPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	for _, p := range products {
		vec, err := comps.Embedder.EmbedText(ctx, p.Name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Embed %s failed: %v\n", p.ID, err)
			os.Exit(1)
		}
		p.Embedding = vec
		if err := comps.Store.Upsert(ctx, p); err != nil {
			fmt.Fprintf(os.Stderr, "Store %s failed: %v\n", p.ID, err)
			os.Exit(1)
		}
	}
	if err := comps.Loader.Reload(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Index rebuild failed: %v\n", err)
		os.Exit(1)
	}
	if err := comps.Vectors.Save(cfg.Catalog.VectorIndexPath); err != nil {
		fmt.Fprintf(os.Stderr, "Save vector index failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d products from %s\n", len(products), xlsxPath)
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	output := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer comps.Close()

	ctx := context.Background()
	count, err := comps.Store.Count(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Count failed: %v\n", err)
		os.Exit(1)
	}
	docCount, err := comps.Names.DocCount()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Doc count failed: %v\n", err)
		os.Exit(1)
	}

	status := map[string]interface{}{
		"products":             count,
		"vector_index_size":    comps.Vectors.Size(),
		"keyword_index_docs":   docCount,
		"embedding_provider":   cfg.Embedding.Provider,
		"embedding_dimensions": cfg.Embedding.Dimensions,
		"database_path":        cfg.Catalog.DatabasePath,
	}
	if *output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(status)
		return
	}
	fmt.Printf("Products:           %d\n", count)
	fmt.Printf("Vector index size:  %d\n", comps.Vectors.Size())
	fmt.Printf("Keyword index docs: %d\n", docCount)
	fmt.Printf("Embedding provider: %s (%d dims)\n", cfg.Embedding.Provider, cfg.Embedding.Dimensions)
	fmt.Printf("Database:           %s\n", cfg.Catalog.DatabasePath)
}
