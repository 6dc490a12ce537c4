package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	articleHandler "article-catalog/internal/domains/article/handler"
	"article-catalog/internal/shared/middleware"
	"article-catalog/pkg/container"
)

// pinger is implemented by the database and the Redis cache
type pinger interface {
	Ping(ctx context.Context) error
}

func SetupRouter(c *container.Container) *gin.Engine {
	var cachePinger pinger
	if c.Cache != nil {
		cachePinger = c.Cache
	}
	return newRouter(c.ArticleHandler, c.DB, cachePinger, c.Config.App.Version)
}

func newRouter(articles *articleHandler.ArticleHandler, db, cache pinger, version string) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(db, cache, version))
		setupArticleRoutes(v1, articles)
	}

	return router
}

// ========================================
// ARTICLE ROUTES
// ========================================
func setupArticleRoutes(v1 *gin.RouterGroup, h *articleHandler.ArticleHandler) {
	articles := v1.Group("/articles")
	{
		articles.GET("", h.ListArticles)
		articles.POST("", h.CreateArticle)
		articles.PUT("/:id", h.UpdateArticle)
		articles.DELETE("/:id", h.DeleteArticle)
		articles.DELETE("", h.DeleteAllArticles)
	}
}

// healthCheckHandler: 200 khi database ping OK, 503 nếu không.
// Redis is reported but never makes the service unhealthy.
func healthCheckHandler(db, cache pinger, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		dbStatus := "ok"
		if err := db.Ping(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			status = "degraded"
		}

		redisStatus := "disabled"
		if cache != nil {
			redisStatus = "ok"
			if err := cache.Ping(ctx); err != nil {
				redisStatus = "error: " + err.Error()
			}
		}

		code := http.StatusOK
		if dbStatus != "ok" {
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
			"services": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	}
}
