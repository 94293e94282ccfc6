package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mealstash/backend/config"
	"github.com/mealstash/backend/internal/api"
	"github.com/mealstash/backend/internal/database"
	"github.com/mealstash/backend/internal/middleware"
	"github.com/mealstash/backend/internal/scraper"
	"github.com/mealstash/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// New wires the API against the given database and optional redis
// client (nil means pending imports live in process memory).
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORS())

	var pending service.PendingStore
	if redisClient != nil {
		pending = service.NewRedisPendingStore(redisClient)
	} else {
		pending = service.NewMemoryPendingStore()
	}

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Printf("[Server] S3 unavailable, images stay local only: %v", err)
	}
	if s3Config != nil {
		if err := s3Config.SetupBucketPolicy(context.Background()); err != nil {
			log.Printf("[Server] Failed to apply S3 bucket policy: %v", err)
		}
	}

	images := service.NewImageService(cfg.DataDir, s3Config)
	recipes := service.NewRecipeService(db, images)
	sc := scraperForConfig(cfg)
	importer := service.NewImportService(sc, recipes, images, pending)

	api.SetupAPI(router, recipes, importer, images)

	srv := &Server{
		router: router,
		db:     db,
		redis:  redisClient,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
	}
	router.GET("/health", srv.healthCheck)
	return srv
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	log.Printf("[Server] Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) healthCheck(c *gin.Context) {
	if err := database.HealthCheck(c.Request.Context(), s.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": err.Error()})
		return
	}
	if s.redis != nil {
		if err := s.redis.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "redis": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// scraperForConfig builds the page scraper, honoring a configured
// User-Agent override.
func scraperForConfig(cfg *config.Config) *scraper.Scraper {
	if cfg.UserAgent == "" {
		return scraper.New(nil)
	}
	return scraper.New(&scraper.Client{UserAgent: cfg.UserAgent})
}
