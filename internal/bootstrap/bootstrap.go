package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/oguzt/trainhub/internal/app/controllers"
	appMigrations "github.com/oguzt/trainhub/internal/app/migrations"
	appRepos "github.com/oguzt/trainhub/internal/app/repositories"
	appRoutes "github.com/oguzt/trainhub/internal/app/routes"
	appServices "github.com/oguzt/trainhub/internal/app/services"
	"github.com/oguzt/trainhub/internal/config"
	"github.com/oguzt/trainhub/internal/db"
	"github.com/oguzt/trainhub/internal/middleware"
	"github.com/oguzt/trainhub/internal/pkg/auth"
	"github.com/oguzt/trainhub/internal/pkg/email"
	"github.com/oguzt/trainhub/internal/pkg/helpers"
	"github.com/oguzt/trainhub/internal/pkg/logger"
	"github.com/oguzt/trainhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos              *appRepos.Repositories
	TokenService       *auth.TokenService
	Mailer             email.Mailer
	Links              email.LinkBuilder
	AuthService        *appServices.AuthService
	EventService       *appServices.EventService
	NomineeService     *appServices.NomineeService
	FeedbackService    *appServices.FeedbackService
	AuthController     *appControllers.AuthController
	EventController    *appControllers.EventController
	NomineeController  *appControllers.NomineeController
	FeedbackController *appControllers.FeedbackController
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	admins := appRepos.NewAdminRepository(dbPool)
	if err := seed.CreateDefaultAdmin(context.Background(), admins, cfg, lgr); err != nil {
		// Seeding failure is not fatal; login just won't work until fixed
		lgr.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.TokenService = auth.NewTokenService(auth.TokenConfig{
		SecretKey:  cfg.Session.Secret,
		Expiration: helpers.ParseDuration(cfg.Session.Expiration, 24*time.Hour),
		Issuer:     cfg.Session.Issuer,
	})

	deps.Links = email.LinkBuilder{
		FrontendURL: strings.TrimRight(cfg.URLs.Frontend, "/"),
		BackendURL:  strings.TrimRight(cfg.URLs.Backend, "/"),
	}

	deps.Mailer = email.NewSMTPMailer(email.SMTPConfig{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		FromName:   cfg.SMTP.FromName,
		FromEmail:  cfg.SMTP.FromEmail,
		AdminEmail: cfg.SMTP.AdminEmail,
		UseTLS:     cfg.SMTP.UseTLS,
	}, deps.Links, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.AdminRepository,
		deps.Repos.SessionRepository,
		deps.TokenService,
		lgr,
	)
	deps.EventService = appServices.NewEventService(
		deps.Repos.EventRepository,
		deps.Repos.NomineeRepository,
		deps.Repos.FeedbackRepository,
	)
	deps.NomineeService = appServices.NewNomineeService(
		deps.Repos.EventRepository,
		deps.Repos.NomineeRepository,
		deps.Repos.FeedbackRepository,
		deps.Mailer,
		lgr,
	)
	deps.FeedbackService = appServices.NewFeedbackService(
		deps.Repos.EventRepository,
		deps.Repos.NomineeRepository,
		deps.Repos.FeedbackRepository,
	)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.EventController = appControllers.NewEventController(deps.EventService)
	deps.NomineeController = appControllers.NewNomineeController(deps.NomineeService, deps.Links)
	deps.FeedbackController = appControllers.NewFeedbackController(deps.FeedbackService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(lgr))
	router.Use(middleware.CORS(strings.TrimRight(cfg.URLs.Frontend, "/")))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.EventController,
		deps.NomineeController,
		deps.FeedbackController,
		deps.AuthService,
	)

	return router
}
