// Package bootstrap builds the application graph from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/enlistment/internal/app/auth"
	appControllers "github.com/yigit/enlistment/internal/app/controllers"
	appMigrations "github.com/yigit/enlistment/internal/app/migrations"
	appRepos "github.com/yigit/enlistment/internal/app/repositories"
	appRoutes "github.com/yigit/enlistment/internal/app/routes"
	appServices "github.com/yigit/enlistment/internal/app/services"
	"github.com/yigit/enlistment/internal/config"
	"github.com/yigit/enlistment/internal/db"
	appMiddleware "github.com/yigit/enlistment/internal/middleware"
	pkgAuth "github.com/yigit/enlistment/internal/pkg/auth"
	"github.com/yigit/enlistment/internal/pkg/logger"
	"github.com/yigit/enlistment/internal/pkg/tokenstore"
	"github.com/yigit/enlistment/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	Revocations    tokenstore.RevocationStore
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, runs migrations and seeds default data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	repos := appRepos.NewRepositories(dbPool)
	admin := seed.Admin{Username: cfg.Seed.AdminUsername, Password: cfg.Seed.AdminPassword}
	if err := seed.CreateDefaultData(ctx, repos.RoleRepository, repos.UserRepository, admin, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupRevocationStore returns the Redis deny-list when enabled and the in-process
// store otherwise. The returned client is nil unless Redis is in use.
func SetupRevocationStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (tokenstore.RevocationStore, *redis.Client, error) {
	if !cfg.Redis.Enabled {
		lgr.Warn().Msg("Redis disabled, logged-out tokens are only tracked by this instance")
		return tokenstore.NewMemoryStore(), nil, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := tokenstore.NewRedisClient(pingCtx, tokenstore.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis token revocation store connected")
	return tokenstore.NewRedisStore(client), client, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool appRepos.DBTX, revocations tokenstore.RevocationStore, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr, Revocations: revocations}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		PreviousKeys:   cfg.JWT.PreviousSecrets,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.UserRepository,
		cfg.Auth.RoleCapabilities,
		cfg.Auth.EnforceCapabilities,
	)
	if !cfg.Auth.EnforceCapabilities {
		lgr.Warn().Msg("Capability enforcement disabled, every authenticated user may write")
	}

	deps.Services = appServices.NewServices(
		appServices.StoresFromRepositories(deps.Repos),
		deps.JWTService,
		revocations,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, revocations, deps.AuthzService)

	deps.Controllers = appRoutes.Controllers{
		User:       appControllers.NewUserController(deps.Services.UserService, deps.AuthzService, lgr),
		Role:       appControllers.NewRoleController(deps.Services.RoleService),
		Course:     appControllers.NewCourseController(deps.Services.CourseService),
		Subject:    appControllers.NewSubjectController(deps.Services.SubjectService),
		Section:    appControllers.NewSectionController(deps.Services.SectionService),
		Enrollment: appControllers.NewEnrollmentController(deps.Services.EnrollmentService, deps.AuthzService),
	}

	return deps
}

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, database Pinger, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterValidation()
	metrics := appMiddleware.NewMetrics()

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(),
		metrics.Middleware(),
		gin.Recovery(),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/metrics", metrics.Handler())
	router.GET("/health", healthHandler(database))
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Course enlistment API is running"})
	})

	return router
}

func healthHandler(database Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
