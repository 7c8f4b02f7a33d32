package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/gpx-records/internal/config"
	"github.com/jengzang/gpx-records/internal/handler"
	"github.com/jengzang/gpx-records/internal/middleware"
	"github.com/jengzang/gpx-records/internal/repository"
	"github.com/jengzang/gpx-records/internal/service"
)

// Deps are the collaborators the router wires into handlers
type Deps struct {
	Config        *config.Config
	DB            *sql.DB
	Logger        *slog.Logger
	ImportService *service.ImportService
}

// SetupRouter 设置路由. The rate limiter lives until ctx is done.
func SetupRouter(ctx context.Context, deps Deps) *gin.Engine {
	cfg := deps.Config

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(deps.Logger))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{"status": "ok", "message": "GPX Records API is running"}
		if err := deps.DB.PingContext(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			body = gin.H{"status": "error", "message": err.Error()}
		}
		c.JSON(status, body)
	})

	trackHandler := handler.NewTrackHandler(service.NewTrackService(repository.NewTrackRepository(deps.DB)))
	importHandler := handler.NewImportHandler(deps.ImportService)
	limiter := middleware.NewRateLimiter(ctx, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	api := r.Group("/api/v1")
	{
		// 轨迹相关接口
		tracks := api.Group("/tracks")
		{
			tracks.GET("/points", trackHandler.GetTrackPoints)
			tracks.GET("/points/:id", trackHandler.GetTrackPointByID)
		}

		// GPX 导入接口
		imports := api.Group("/imports")
		{
			imports.GET("", importHandler.ListImports)
			imports.GET("/:id", importHandler.GetImport)
			imports.POST("",
				middleware.RateLimit(limiter),
				middleware.JWTAuth(cfg.Auth.JWTSecret),
				importHandler.CreateImport,
			)
		}
	}

	return r
}
