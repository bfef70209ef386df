package app

import (
	"context"

	"github.com/iotguard/iotguard/internal/domain"
	"github.com/iotguard/iotguard/internal/infrastructure/analyzer"
	"github.com/iotguard/iotguard/internal/infrastructure/cache"
	"github.com/iotguard/iotguard/internal/infrastructure/catalog"
	"github.com/iotguard/iotguard/internal/infrastructure/classifier"
	"github.com/iotguard/iotguard/internal/infrastructure/config"
	"github.com/iotguard/iotguard/internal/infrastructure/device"
	"github.com/iotguard/iotguard/internal/infrastructure/embedding"
	"github.com/iotguard/iotguard/internal/infrastructure/history"
	"github.com/iotguard/iotguard/internal/infrastructure/rules"
	"github.com/iotguard/iotguard/internal/infrastructure/userstore"
	"github.com/iotguard/iotguard/internal/pkg/logger"
	"github.com/iotguard/iotguard/internal/ports"
	"github.com/iotguard/iotguard/internal/services"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Advisor        domain.AdvisorService
	ConfigProvider ports.ConfigProvider
	Config         domain.Config
	Users          ports.UserStore
	History        ports.HistoryRepository
	Cache          ports.CacheRepository
	Catalog        ports.CatalogRepository
	Devices        ports.DeviceController
	Logger         ports.Logger

	// AnalyzerErr holds a failed analyzer construction (e.g. a missing API
	// key). Commands that need no analysis still work; the check command
	// surfaces it.
	AnalyzerErr error
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)

	users, err := userstore.NewSQLiteStore(cfg.Storage.UsersDB)
	if err != nil {
		return nil, err
	}

	catalogRepo := catalog.NewJSONCatalog()
	if err := catalogRepo.Load(cfg.Matcher.CatalogFile); err != nil {
		log.Warn("catalog load failed, starting with previous state", map[string]interface{}{
			"path":  cfg.Matcher.CatalogFile,
			"error": err.Error(),
		})
	}

	historyStore := history.NewFileStore(cfg.Storage.HistoryFile, cfg.Advisor.HistoryLimit)
	cacheStore := cache.NewMemory()
	parser := analyzer.NewParser()

	riskAnalyzer, analyzerErr := buildAnalyzer(cfg, catalogRepo, log)

	advisor := &services.AdvisorService{
		ConfigProvider: cfgLoader,
		Users:          users,
		Rules:          rules.NewEngine(),
		Cache:          cacheStore,
		Analyzer:       riskAnalyzer,
		Parser:         parser,
		Logger:         log,
	}

	return &Container{
		Advisor:        advisor,
		ConfigProvider: cfgLoader,
		Config:         cfg,
		Users:          users,
		History:        historyStore,
		Cache:          cacheStore,
		Catalog:        catalogRepo,
		Devices:        device.NewSimulator(users),
		Logger:         log,
		AnalyzerErr:    analyzerErr,
	}, nil
}

func buildAnalyzer(cfg domain.Config, catalogRepo ports.CatalogRepository, log ports.Logger) (ports.Analyzer, error) {
	if cfg.Analyzer.Mode == domain.AnalyzerModeLocal {
		embedder := embedding.NewHashingEmbedder()
		matcher := embedding.NewMatcher(embedder, cfg.Matcher.Threshold)
		return analyzer.NewLocal(classifier.New(cfg.Classifier), matcher, catalogRepo, log), nil
	}
	gemini, err := analyzer.NewGemini(cfg.Analyzer, log)
	if err != nil {
		return nil, err
	}
	return gemini, nil
}
