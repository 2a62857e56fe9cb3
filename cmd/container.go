// container.go
package main

import (
	"context"
	"fmt"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	aiopenai "github.com/somGabriel/Proago/pkg/ai/providers/openai"
	"github.com/somGabriel/Proago/pkg/config"
	"github.com/somGabriel/Proago/pkg/fsx"
	"github.com/somGabriel/Proago/pkg/fsx/fsxlocal"
	"github.com/somGabriel/Proago/pkg/fsx/fsxs3"
	"github.com/somGabriel/Proago/pkg/iam/auth"
	"github.com/somGabriel/Proago/pkg/iam/auth/authinfra"
	"github.com/somGabriel/Proago/pkg/lead"
	"github.com/somGabriel/Proago/pkg/lead/leadai"
	"github.com/somGabriel/Proago/pkg/lead/leadapi"
	"github.com/somGabriel/Proago/pkg/lead/leadinfra"
	"github.com/somGabriel/Proago/pkg/lead/leadsrv"
	"github.com/somGabriel/Proago/pkg/logx"
	"github.com/somGabriel/Proago/pkg/team/teamapi"
	"github.com/somGabriel/Proago/pkg/team/teamsrv"
)

// Container holds all application dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Domain Services
	LeadService *leadsrv.LeadService
	TeamService *teamsrv.TeamService

	// Auth
	TokenService   auth.TokenService
	SessionStore   auth.SessionStore
	AuthMiddleware *auth.AuthMiddleware

	// API Handlers
	AuthHandlers *auth.AuthHandlers
	LeadHandlers *leadapi.LeadHandlers
	TeamHandlers *teamapi.TeamHandlers
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing dependency container...")

	c := &Container{
		Config: cfg,
	}

	c.initInfrastructure()
	c.initServices()

	logx.Info("✅ Container initialized successfully")
	return c
}

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")

	// 1. Database Connection (optional; the seeded memory store covers the
	// demo deployment)
	if c.Config.Database.Enabled {
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Config.Database.Host,
			c.Config.Database.Port,
			c.Config.Database.User,
			c.Config.Database.Password,
			c.Config.Database.Name,
			c.Config.Database.SSLMode,
		)

		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			logx.Warnf("⚠️  Database unreachable, continuing on the in-memory store: %v", err)
		} else {
			db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
			db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
			db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
			c.DB = db
			logx.Info("✅ Database connected")
		}
	} else {
		logx.Info("ℹ️  Database disabled, using the seeded in-memory lead store")
	}

	// 2. Redis Connection (optional; sessions fall back to process memory)
	if c.Config.Redis.Enabled {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Address(),
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
			logx.Warnf("⚠️  Redis unreachable, sessions stay in memory: %v", err)
			c.Redis = nil
		} else {
			logx.Info("✅ Redis connected")
		}
	}

	// 3. File Storage Configuration (Local or S3)
	c.initFileStorage()

	logx.Info("✅ Infrastructure initialized")
}

func (c *Container) initFileStorage() {
	switch c.Config.Storage.Mode {
	case "s3":
		cfg, err := awsConfig.LoadDefaultConfig(context.TODO(), awsConfig.WithRegion(c.Config.Storage.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, c.Config.Storage.AWSBucket, "")
		logx.Infof("✅ S3 file system configured (bucket: %s, region: %s)", c.Config.Storage.AWSBucket, c.Config.Storage.AWSRegion)

	case "local":
		localFS, err := fsxlocal.NewLocalFileSystem(c.Config.Storage.LocalPath)
		if err != nil {
			logx.Fatalf("Failed to initialize local file system: %v", err)
		}
		c.FileSystem = localFS
		logx.Infof("✅ Local file system configured (path: %s)", localFS.GetBasePath())

	default:
		logx.Fatalf("Unknown STORAGE_MODE: %s (use 'local' or 's3')", c.Config.Storage.Mode)
	}
}

func (c *Container) initServices() {
	logx.Info("🗄️  Initializing repositories and services...")

	// --- Lead Store ---
	// The seeded memory store always exists; with a database it becomes the
	// fallback behind Postgres, without one it is the store.
	memoryRepo := leadinfra.NewSeededMemoryLeadRepository()

	var leadRepo lead.Repository = memoryRepo
	if c.DB != nil {
		leadRepo = leadinfra.NewFallbackLeadRepository(
			leadinfra.NewPostgresLeadRepository(c.DB),
			memoryRepo,
		)
		logx.Info("✅ Postgres lead store with in-memory fallback")
	}

	// --- CV Scorer ---
	var scorer lead.CVScorer
	if c.Config.AI.Enabled && c.Config.AI.APIKey != "" {
		provider := aiopenai.NewOpenAIProvider(c.Config.AI.APIKey)
		scorer = leadai.NewSafeScorer(leadai.NewScorer(provider, c.Config.AI.Model))
		logx.Infof("✅ CV scoring enabled (model: %s)", c.Config.AI.Model)
	} else {
		logx.Info("ℹ️  CV scoring disabled, submissions use the heuristic score only")
	}

	// --- Domain Services ---
	c.LeadService = leadsrv.NewLeadService(leadRepo, scorer, c.FileSystem, c.Config.AI.Timeout)
	c.TeamService = teamsrv.NewTeamService()

	// --- Auth ---
	c.TokenService = auth.NewJWTServiceFromConfig(&c.Config.Auth.JWT)

	if c.Config.Auth.Session.StoreType == "redis" && c.Redis != nil {
		c.SessionStore = authinfra.NewRedisSessionStore(c.Redis)
		logx.Info("✅ Using Redis session store")
	} else {
		c.SessionStore = authinfra.NewMemorySessionStore()
		logx.Warn("⚠️  Using in-memory session store (not recommended for production)")
	}

	var verifier auth.CredentialVerifier
	if c.Config.Auth.DemoLoginEnabled {
		verifier = authinfra.NewStaticVerifier(c.Config.Auth.DemoUsers)
		logx.Info("✅ Demo login enabled (fixed accounts)")
	} else {
		if c.DB == nil {
			logx.Fatalf("Demo login is disabled and no database is configured; no identity source available")
		}
		verifier = authinfra.NewBcryptVerifier(c.DB)
		logx.Info("✅ Database-backed login enabled")
	}

	c.AuthMiddleware = auth.NewAuthMiddleware(c.TokenService)

	// --- API Handlers ---
	c.AuthHandlers = auth.NewAuthHandlers(verifier, c.TokenService, c.SessionStore, c.Config.Auth.Session.TTL)
	c.LeadHandlers = leadapi.NewLeadHandlers(c.LeadService)
	c.TeamHandlers = teamapi.NewTeamHandlers(c.TeamService)

	logx.Info("✅ All services and handlers initialized")
}

// StartBackgroundServices starts background workers
func (c *Container) StartBackgroundServices(ctx context.Context) {
	logx.Info("🔄 Starting background services...")

	// Warm the pipeline working set so the first board request is served
	// from memory.
	go func() {
		if err := c.LeadService.Refresh(ctx); err != nil {
			logx.Warnf("⚠️  Initial pipeline load failed: %v", err)
		} else {
			logx.Info("✅ Pipeline working set loaded")
		}
	}()
}

// Cleanup closes all connections and stops workers
func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("✅ Database connection closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup completed")
}
