package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"article-catalog/internal/config"
	infraCache "article-catalog/internal/infrastructure/cache"
	"article-catalog/internal/infrastructure/database"
	"article-catalog/pkg/cache"

	articleHandler "article-catalog/internal/domains/article/handler"
	articleRepo "article-catalog/internal/domains/article/repository"
	articleService "article-catalog/internal/domains/article/service"
	authorRepo "article-catalog/internal/domains/author/repository"
	authorService "article-catalog/internal/domains/author/service"
	"article-catalog/internal/domains/seed"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Thứ tự init: Config -> Infrastructure -> Repositories -> Services -> Handlers
type Container struct {
	// Infrastructure (singleton)
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	// Repositories
	AuthorRepo  authorRepo.RepositoryInterface
	ArticleRepo articleRepo.RepositoryInterface

	// Services
	AuthorService  authorService.ServiceInterface
	ArticleService articleService.ServiceInterface
	SeedLoader     *seed.Loader

	// Handlers
	ArticleHandler *articleHandler.ArticleHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph.
// Database failure is fatal. Redis failure is not: the listing cache is
// bypassed per call until Redis comes back.
func NewContainer() (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("✅ Config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical), listing cache will be bypassed")
	}
	c.Cache = redisCache

	// ========================================
	// STEP 4-6: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool
	timeout := c.Config.Database.QueryTimeout

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, timeout)
	c.ArticleRepo = articleRepo.NewPostgresRepository(pool, timeout)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)

	c.ArticleService = articleService.NewArticleService(
		c.ArticleRepo,
		c.AuthorRepo,
		c.AuthorService,
		c.DB.Pool, // transactions for article+author updates
		c.Config.Database.QueryTimeout,
		c.Cache,
		c.Config.Redis.ListTTL,
	)

	c.SeedLoader = seed.NewLoader(c.AuthorRepo, c.ArticleRepo)
}

func (c *Container) initHandlers() {
	c.ArticleHandler = articleHandler.NewArticleHandler(c.ArticleService)
}

// Bootstrap ensures the schema and, when enabled, seeds an empty catalog.
// A schema error aborts startup; seeding problems are logged only.
func (c *Container) Bootstrap(ctx context.Context) error {
	if err := database.EnsureSchema(ctx, c.DB.Pool); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	if !c.Config.Seed.Enabled {
		log.Info().Msg("[SEED] Seeding disabled")
		return nil
	}

	records, err := seed.LoadDataset(c.Config.Seed.File)
	if err != nil {
		log.Error().Err(err).Str("file", c.Config.Seed.File).Msg("[SEED] Dataset unavailable, skipping seed")
		return nil
	}

	if _, err := c.SeedLoader.SeedIfEmpty(ctx, records); err != nil {
		log.Error().Err(err).Msg("[SEED] Seeding aborted")
	}
	return nil
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
