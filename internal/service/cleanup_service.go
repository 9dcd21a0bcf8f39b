package service

import (
	"sync"
	"time"

	"github.com/user/moviesearch/internal/metrics"
	"github.com/user/moviesearch/internal/repository"
	"go.uber.org/zap"
)

// CleanupService 定时清理过期的查询缓存并刷新会话数指标
// LRU 缓存只在读取时检查过期，不清理的话过期条目会一直占位
type CleanupService struct {
	search   *SearchService
	repos    *repository.Repositories
	metrics  *metrics.Metrics
	logger   *zap.Logger
	interval time.Duration

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewCleanupService 创建清理服务
func NewCleanupService(search *SearchService, repos *repository.Repositories, m *metrics.Metrics, logger *zap.Logger, interval time.Duration) *CleanupService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CleanupService{
		search:   search,
		repos:    repos,
		metrics:  m,
		logger:   logger.With(zap.String("component", "cleanup")),
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start 启动定时清理任务
func (s *CleanupService) Start() {
	ticker := time.NewTicker(s.interval)

	go func() {
		defer close(s.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.RunOnce()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop 停止并等待后台任务退出
func (s *CleanupService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
}

// RunOnce 执行一次清理
func (s *CleanupService) RunOnce() {
	removed := s.search.PurgeExpired()
	active := s.repos.Result.Count()
	s.metrics.ActiveResultStores.Set(float64(active))

	if removed > 0 {
		s.logger.Info("已清理过期查询缓存", zap.Int("removed", removed), zap.Int("active_sessions", active))
	}
}
