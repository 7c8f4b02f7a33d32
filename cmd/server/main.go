package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/gpx-records/internal/api"
	"github.com/jengzang/gpx-records/internal/config"
	"github.com/jengzang/gpx-records/internal/database"
	"github.com/jengzang/gpx-records/internal/gpx"
	"github.com/jengzang/gpx-records/internal/repository"
	"github.com/jengzang/gpx-records/internal/service"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)
	gin.SetMode(cfg.Server.GinMode)

	// 初始化数据库
	if err := database.Init(database.Config{Path: cfg.DB.Path}); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	loadOpts, err := service.LoadOptions(cfg.GPX)
	if err != nil {
		logger.Error("failed to configure gpx loading", "error", err)
		os.Exit(1)
	}

	// 打开导入目录
	if err := os.MkdirAll(cfg.Import.Root, 0o755); err != nil {
		logger.Error("failed to create import root", "error", err)
		os.Exit(1)
	}
	importRoot, err := os.OpenRoot(cfg.Import.Root)
	if err != nil {
		logger.Error("failed to open import root", "error", err)
		os.Exit(1)
	}
	defer importRoot.Close()
	loadOpts = append(loadOpts, gpx.WithRoot(importRoot))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := database.GetDB()
	importService := service.NewImportService(repository.NewImportRepository(db), logger, cfg.Import.Concurrency, loadOpts...)

	// 初始化路由
	router := api.SetupRouter(ctx, api.Deps{
		Config:        cfg,
		DB:            db,
		Logger:        logger,
		ImportService: importService,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	// 启动服务器
	logger.Info("server starting", "addr", cfg.Server.Port, "importRoot", cfg.Import.Root)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
