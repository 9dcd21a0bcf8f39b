package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/user/moviesearch/internal/config"
	"github.com/user/moviesearch/internal/handler"
	"github.com/user/moviesearch/internal/metrics"
	"github.com/user/moviesearch/internal/repository"
	"github.com/user/moviesearch/internal/router"
	"github.com/user/moviesearch/internal/service"
	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() && cfg.UsesDefaultSecret() {
		logger.Warn("生产环境正在使用默认密钥，请设置 APP_SECRET")
	}

	// 初始化仓库和指标
	repos := repository.NewRepositories(cfg.ResultTTL)
	m := metrics.New()

	// 初始化 Handler
	h, err := handler.NewHandler(repos, cfg, m, logger)
	if err != nil {
		logger.Fatal("初始化处理器失败", zap.Error(err))
	}

	// 启动定时清理任务
	cleanupSvc := service.NewCleanupService(h.SearchService, repos, m, logger, cfg.CleanupInterval)
	cleanupSvc.Start()
	defer cleanupSvc.Stop()

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router.New(h),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   cfg.OMDbTimeout + 10*time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 在 goroutine 中启动服务器，这样我们就可以监听信号
	go func() {
		logger.Info("服务器启动",
			zap.String("addr", "http://localhost:"+cfg.Port),
			zap.String("omdb", cfg.OMDbBaseURL),
			zap.String("sort_locale", h.Sorter.Locale()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	logger.Info("服务器已退出")
}
