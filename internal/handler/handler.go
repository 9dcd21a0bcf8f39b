package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviesearch/internal/config"
	"github.com/user/moviesearch/internal/metrics"
	"github.com/user/moviesearch/internal/model"
	"github.com/user/moviesearch/internal/render"
	"github.com/user/moviesearch/internal/repository"
	"github.com/user/moviesearch/internal/service"
	"github.com/user/moviesearch/internal/sorter"
	"github.com/user/moviesearch/internal/utils"
	"go.uber.org/zap"
)

// Handler HTTP 处理器
type Handler struct {
	Repos         *repository.Repositories
	Config        *config.Config
	SearchService *service.SearchService
	Sorter        *sorter.Sorter
	Renderer      *render.Renderer
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (*Handler, error) {
	// 创建 OMDb 客户端
	client := service.NewOMDbClient(service.OMDbConfig{
		BaseURL: cfg.OMDbBaseURL,
		APIKey:  cfg.OMDbAPIKey,
		Timeout: cfg.OMDbTimeout,
	}, m, logger)

	// 查询缓存
	cache, err := utils.NewSearchCache[[]model.MovieRecord](cfg.SearchCacheSize, cfg.SearchCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("创建查询缓存失败: %w", err)
	}

	// 标题排序
	srt, err := sorter.NewSorter(cfg.SortLocale)
	if err != nil {
		return nil, err
	}

	rdr, err := render.New()
	if err != nil {
		return nil, err
	}

	return &Handler{
		Repos:         repos,
		Config:        cfg,
		SearchService: service.NewSearchService(client, cache, m, logger),
		Sorter:        srt,
		Renderer:      rdr,
		Metrics:       m,
		Logger:        logger,
	}, nil
}

// isHTMX 是否为 htmx 局部请求
func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// renderResults htmx 请求只返回容器内容，普通请求返回整页
func (h *Handler) renderResults(c *gin.Context, query string, order model.SortOrder, movies []model.MovieRecord) {
	if isHTMX(c) {
		c.HTML(http.StatusOK, render.ContainerTemplate, movies)
		return
	}
	c.HTML(http.StatusOK, render.PageTemplate, h.pageData(query, order, true, movies))
}

func (h *Handler) pageData(query string, order model.SortOrder, searched bool, movies []model.MovieRecord) render.PageData {
	title := h.Config.SiteName
	if query != "" {
		title = query + " - " + h.Config.SiteName
	}
	return render.PageData{
		Title:     title,
		SiteName:  h.Config.SiteName,
		Query:     query,
		SortOrder: order,
		Searched:  searched,
		Movies:    movies,
	}
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
