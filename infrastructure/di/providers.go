// Package di assembles the application: configuration in, wired container
// out. Providers are plain functions composed by InitializeContainer.
package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"moji-backend/application/ports"
	"moji-backend/application/services"
	"moji-backend/infrastructure/ai"
	"moji-backend/infrastructure/config"
	"moji-backend/infrastructure/persistence/sqlite"
	"moji-backend/pkg/auth"
)

// Container holds every wired component the binaries need.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	DB *sqlite.DB

	TokenService *auth.Service

	AuthService       *services.AuthService
	EntryService      *services.EntryService
	GardenService     *services.GardenService
	LiteratureService *services.LiteratureService
	StatsService      *services.StatsService
}

// InitializeContainer wires the full dependency graph.
func InitializeContainer(cfg *config.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := sqlite.Open(cfg.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	tokens, err := ProvideTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("init token service: %w", err)
	}

	userStore := sqlite.NewUserStore(db)
	entryStore := sqlite.NewEntryStore(db)
	literatureStore := sqlite.NewLiteratureStore(db)
	gardenStore := sqlite.NewGardenStore(db)

	gateway := ProvideAIGateway(cfg, logger)

	literatureService := services.NewLiteratureService(literatureStore, logger)
	gardenService := services.NewGardenService(gardenStore, logger)
	authService := services.NewAuthService(userStore, tokens, logger)
	entryService := services.NewEntryService(entryStore, userStore, gateway, literatureService, gardenService, logger)
	statsService := services.NewStatsService(entryStore, userStore, logger)

	return &Container{
		Config:            cfg,
		Logger:            logger,
		DB:                db,
		TokenService:      tokens,
		AuthService:       authService,
		EntryService:      entryService,
		GardenService:     gardenService,
		LiteratureService: literatureService,
		StatsService:      statsService,
	}, nil
}

// Close releases the container's resources.
func (c *Container) Close() error {
	return c.DB.Close()
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideTokenService creates the JWT token service
func ProvideTokenService(cfg *config.Config) (*auth.Service, error) {
	return auth.NewService(auth.Config{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		Expiry:    7 * 24 * time.Hour,
	})
}

// ProvideAIGateway creates the DashScope-backed AI gateway
func ProvideAIGateway(cfg *config.Config, logger *zap.Logger) ports.AIGateway {
	client := ai.NewClient(cfg.DashScopeAPIKey, cfg.DashScopeBaseURL, logger)
	return ai.NewGateway(client, logger)
}
