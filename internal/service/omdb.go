package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/user/moviesearch/internal/metrics"
	"github.com/user/moviesearch/internal/model"
	"github.com/user/moviesearch/internal/utils"
	"go.uber.org/zap"
)

// ErrNoResults 响应里没有可用的 Search 数组
var ErrNoResults = errors.New("omdb: 响应中没有搜索结果")

// OMDbClient OMDb 搜索接口
// 只负责单次请求，缓存和并发合并由调用方处理
type OMDbClient interface {
	Search(ctx context.Context, query string) ([]model.MovieRecord, error)
}

// OMDbConfig OMDb 客户端配置
type OMDbConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// DefaultOMDbClient 默认 OMDb 客户端实现
type DefaultOMDbClient struct {
	cfg     OMDbConfig
	client  *utils.HTTPClient
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewOMDbClient 创建 OMDb 客户端
func NewOMDbClient(cfg OMDbConfig, m *metrics.Metrics, logger *zap.Logger) *DefaultOMDbClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &DefaultOMDbClient{
		cfg:     cfg,
		client:  utils.NewHTTPClient(cfg.Timeout),
		metrics: m,
		logger:  logger.With(zap.String("component", "omdb")),
	}
}

// SearchURL 构建搜索地址，query 原样编码（包括纯空白）
func (c *DefaultOMDbClient) SearchURL(query string) string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	return fmt.Sprintf("%s/?apikey=%s&s=%s", base, url.QueryEscape(c.cfg.APIKey), url.QueryEscape(query))
}

// Search 搜索电影
func (c *DefaultOMDbClient) Search(ctx context.Context, query string) ([]model.MovieRecord, error) {
	started := time.Now()

	var resp model.SearchResponse
	err := c.client.GetJSON(ctx, c.SearchURL(query), &resp)
	c.metrics.ObserveUpstream(upstreamStatus(err), started)
	if err != nil {
		return nil, err
	}

	if resp.Search == nil {
		c.logger.Debug("响应没有 Search 字段",
			zap.String("query", query),
			zap.String("response", resp.Response),
			zap.String("error", resp.Error),
		)
		return nil, ErrNoResults
	}

	return resp.Search, nil
}

func upstreamStatus(err error) string {
	if err == nil {
		return "200"
	}
	var statusErr *utils.StatusError
	if errors.As(err, &statusErr) {
		return strconv.Itoa(statusErr.StatusCode)
	}
	return "error"
}
