package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/sirupsen/logrus"

	"unisearch/linkgraph/graph"
	cdbgraph "unisearch/linkgraph/store/cdb"
	memgraph "unisearch/linkgraph/store/memory"
	"unisearch/service"
	"unisearch/service/crawl"
	"unisearch/service/rank"
	"unisearch/service/search"
	"unisearch/textindexer/index"
	bleveindex "unisearch/textindexer/store/bleve"
	ldbindex "unisearch/textindexer/store/leveldb"
	memindex "unisearch/textindexer/store/memory"
)

type appConfig struct {
	SeedURL     string `yaml:"seed_url" env:"SEED_URL" env-required:"true"`
	DomainScope string `yaml:"domain_scope" env:"DOMAIN_SCOPE"`

	GraphBackend string `yaml:"graph_backend" env:"GRAPH_BACKEND" env-default:"memory"`
	GraphDSN     string `yaml:"graph_dsn" env:"GRAPH_DSN"`

	IndexBackend string `yaml:"index_backend" env:"INDEX_BACKEND" env-default:"memory"`
	IndexPath    string `yaml:"index_path" env:"INDEX_PATH" env-default:"./unisearch-index"`

	MaxPages          int           `yaml:"max_pages" env:"MAX_PAGES" env-default:"0"`
	MaxCrawlTime      time.Duration `yaml:"max_crawl_time" env:"MAX_CRAWL_TIME" env-default:"0"`
	FetchTimeout      time.Duration `yaml:"fetch_timeout" env:"FETCH_TIMEOUT" env-default:"10s"`
	FetchWorkers      int           `yaml:"fetch_workers" env:"FETCH_WORKERS" env-default:"4"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"REQUESTS_PER_SECOND" env-default:"0"`

	DampingFactor float64 `yaml:"damping_factor" env:"DAMPING_FACTOR" env-default:"0.85"`
	MaxIterations int     `yaml:"max_iterations" env:"MAX_ITERATIONS" env-default:"100"`
	Tolerance     float64 `yaml:"tolerance" env:"TOLERANCE" env-default:"1e-6"`

	WeightTFIDF    float64 `yaml:"weight_tfidf" env:"WEIGHT_TFIDF" env-default:"0.7"`
	WeightPageRank float64 `yaml:"weight_pagerank" env:"WEIGHT_PAGERANK" env-default:"0.3"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

func main() {
	configPath := flag.String("config", "", "path to an optional yaml config file")
	flag.Parse()

	var cfg appConfig
	var err error
	if *configPath != "" {
		err = cleanenv.ReadConfig(*configPath, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "unisearch: config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Error("run failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, logger *logrus.Entry) error {
	linkGraph, err := newLinkGraph(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(linkGraph, logger)

	idx, err := newTextIndex(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(idx, logger)

	crawlSvc, err := crawl.New(crawl.Config{
		SeedURL:           cfg.SeedURL,
		DomainScope:       cfg.DomainScope,
		GraphAPI:          linkGraph,
		IndexAPI:          idx,
		FetchTimeout:      cfg.FetchTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		NumOfFetchWorkers: cfg.FetchWorkers,
		MaxPages:          cfg.MaxPages,
		MaxCrawlTime:      cfg.MaxCrawlTime,
		Logger:            logger.WithField("service", "crawl"),
	})
	if err != nil {
		return err
	}

	rankSvc, err := rank.New(rank.Config{
		GraphAPI:      linkGraph,
		IndexAPI:      idx,
		DampingFactor: cfg.DampingFactor,
		MaxIterations: cfg.MaxIterations,
		Tolerance:     cfg.Tolerance,
		Logger:        logger.WithField("service", "rank"),
	})
	if err != nil {
		return err
	}

	searchSvc, err := search.New(search.Config{
		IndexAPI:       idx,
		ScoreSource:    rankSvc,
		WeightTFIDF:    cfg.WeightTFIDF,
		WeightPageRank: cfg.WeightPageRank,
		Logger:         logger.WithField("service", "search"),
	})
	if err != nil {
		return err
	}

	return service.Group{crawlSvc, rankSvc, searchSvc}.Execute(ctx)
}

func newLinkGraph(cfg appConfig) (graph.Graph, error) {
	switch cfg.GraphBackend {
	case "memory":
		return memgraph.NewInMemoryGraph(), nil
	case "cockroachdb":
		if cfg.GraphDSN == "" {
			return nil, fmt.Errorf("cockroachdb graph backend requires GRAPH_DSN")
		}
		return cdbgraph.NewCockroachDBGraph(cfg.GraphDSN)
	default:
		return nil, fmt.Errorf("unsupported graph backend %q", cfg.GraphBackend)
	}
}

func newTextIndex(cfg appConfig) (index.Indexer, error) {
	switch cfg.IndexBackend {
	case "memory":
		return memindex.NewInMemoryIndex(index.Tokenizer{}), nil
	case "leveldb":
		return ldbindex.NewLevelDBIndex(cfg.IndexPath, index.Tokenizer{})
	case "bleve":
		return bleveindex.NewBleveIndex(index.Tokenizer{})
	default:
		return nil, fmt.Errorf("unsupported index backend %q", cfg.IndexBackend)
	}
}

func newLogger(level string) *logrus.Entry {
	rootLogger := logrus.New()
	rootLogger.SetFormatter(new(logrus.JSONFormatter))

	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		parsedLevel = logrus.InfoLevel
	}
	rootLogger.SetLevel(parsedLevel)

	return rootLogger.WithField("app", "unisearch")
}

func closeQuietly(store interface{}, logger *logrus.Entry) {
	closer, ok := store.(io.Closer)
	if !ok {
		return
	}

	if err := closer.Close(); err != nil {
		logger.WithError(err).Warn("store close failed")
	}
}
