// Package wire provides dependency injection for the pawlog application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/example/pawlog/internal/adapters/bucket"
	openaiadapter "github.com/example/pawlog/internal/adapters/openai"
	"github.com/example/pawlog/internal/adapters/sqlite"
	"github.com/example/pawlog/internal/app"
	"github.com/example/pawlog/internal/config"
	"github.com/example/pawlog/internal/db"
	"github.com/example/pawlog/internal/models"
	"github.com/example/pawlog/internal/ports/primary"
	"github.com/example/pawlog/internal/ports/secondary"
)

var (
	cfg              *config.Config
	logService       primary.LogService
	profileService   primary.ProfileService
	retentionService primary.RetentionService
	once             sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	once.Do(initServices)
	return logService
}

// ProfileService returns the singleton ProfileService instance.
func ProfileService() primary.ProfileService {
	once.Do(initServices)
	return profileService
}

// RetentionService returns the singleton RetentionService instance.
func RetentionService() primary.RetentionService {
	once.Do(initServices)
	return retentionService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports)
	profileRepo := sqlite.NewProfileRepository(database)
	logRepo := sqlite.NewLogRepository(database)
	analysisRepo := sqlite.NewAnalysisRepository(database)

	// Remote collaborators. Either can be unconfigured; the save pipeline
	// then fails that step with a clear message while manual saves keep
	// working.
	var uploader secondary.PhotoUploader
	if cfg.StorageURL != "" {
		uploader = bucket.NewUploader(cfg.StorageURL, cfg.StorageBucket, cfg.StorageToken, logger)
	} else {
		uploader = unconfiguredUploader{}
	}

	var analyzer secondary.StoolAnalyzer
	if cfg.OpenAIKey != "" {
		analyzer, err = openaiadapter.NewAnalyzer(cfg.OpenAIKey, cfg.OpenAIModel, logger)
		if err != nil {
			log.Fatalf("failed to initialize analyzer: %v", err)
		}
	} else {
		analyzer = unconfiguredAnalyzer{}
	}

	meter := app.NewCreditMeter(logRepo, cfg.MonthlyCredits, logger)
	state := app.NewProfileState()

	// Services (primary ports implementation)
	logService = app.NewLogService(logRepo, analysisRepo, uploader, analyzer, meter, cfg.ConfidenceThreshold, logger)
	retentionService = app.NewRetentionService(logRepo, analysisRepo, profileRepo, state, logger)

	ps := app.NewProfileService(profileRepo, state, logger)
	if err := ps.Load(context.Background()); err != nil {
		log.Fatalf("failed to load profile: %v", err)
	}
	profileService = ps
}

type unconfiguredUploader struct{}

func (unconfiguredUploader) Upload(ctx context.Context, localRef string) (string, error) {
	return "", &secondary.UploadError{Message: "storage endpoint not configured (set PAWLOG_STORAGE_URL)"}
}

type unconfiguredAnalyzer struct{}

func (unconfiguredAnalyzer) Analyze(ctx context.Context, photoURL string, draft models.LogDraft) (*models.AnalysisResult, error) {
	return nil, &secondary.AnalysisError{Message: "OpenAI API key not configured (set OPENAI_API_KEY)"}
}
