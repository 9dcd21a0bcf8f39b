package service

import (
	"context"
	"errors"

	"github.com/user/moviesearch/internal/metrics"
	"github.com/user/moviesearch/internal/model"
	"github.com/user/moviesearch/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SearchService 搜索服务
type SearchService struct {
	client  OMDbClient
	cache   *utils.SearchCache[[]model.MovieRecord]
	metrics *metrics.Metrics
	logger  *zap.Logger
	sf      singleflight.Group
}

// NewSearchService 创建搜索服务
func NewSearchService(
	client OMDbClient,
	cache *utils.SearchCache[[]model.MovieRecord],
	m *metrics.Metrics,
	logger *zap.Logger,
) *SearchService {
	return &SearchService{
		client:  client,
		cache:   cache,
		metrics: m,
		logger:  logger.With(zap.String("component", "search")),
	}
}

// SearchResult 搜索结果
type SearchResult struct {
	Query  string              `json:"query"`
	Movies []model.MovieRecord `json:"movies"`
	Cached bool                `json:"cached"`
	Failed bool                `json:"-"` // 上游失败，已按无结果处理
}

// Search 搜索电影
// 1. 先查缓存
// 2. 同一个关键词的并发请求只打一次上游
// 3. 任何上游错误都按零条结果返回，不向上抛
func (s *SearchService) Search(ctx context.Context, query string) *SearchResult {
	if movies, ok := s.cache.Get(query); ok {
		s.metrics.CacheHitsTotal.Inc()
		s.metrics.SearchesTotal.WithLabelValues("cached").Inc()
		return &SearchResult{Query: query, Movies: model.CloneMovies(movies), Cached: true}
	}
	s.metrics.CacheMissesTotal.Inc()

	// 多个请求共享同一次上游调用，不能跟着发起者的请求一起取消，超时由 HTTP 客户端兜底
	ch := s.sf.DoChan(query, func() (interface{}, error) {
		movies, err := s.client.Search(context.WithoutCancel(ctx), query)
		if err == nil {
			s.cache.Set(query, movies)
		}
		return movies, err
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		s.metrics.SearchesTotal.WithLabelValues("canceled").Inc()
		s.logger.Debug("请求已取消", zap.String("query", query), zap.Error(ctx.Err()))
		return &SearchResult{Query: query, Movies: []model.MovieRecord{}, Failed: true}
	}

	val, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		outcome := "failed"
		if errors.Is(err, ErrNoResults) {
			outcome = "empty"
		} else {
			s.logger.Warn("上游搜索失败，按无结果处理", zap.String("query", query), zap.Error(err))
		}
		s.metrics.SearchesTotal.WithLabelValues(outcome).Inc()
		return &SearchResult{Query: query, Movies: []model.MovieRecord{}, Failed: outcome == "failed"}
	}

	movies := val.([]model.MovieRecord)
	s.metrics.SearchesTotal.WithLabelValues("ok").Inc()
	s.logger.Debug("搜索完成", zap.String("query", query), zap.Int("count", len(movies)), zap.Bool("shared", shared))

	return &SearchResult{Query: query, Movies: model.CloneMovies(movies)}
}

// ClearCache 清空查询缓存
func (s *SearchService) ClearCache() {
	s.cache.Clear()
}

// PurgeExpired 删除过期的缓存条目
func (s *SearchService) PurgeExpired() int {
	return s.cache.PurgeExpired()
}
