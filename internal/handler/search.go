package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviesearch/internal/middleware"
	"github.com/user/moviesearch/internal/model"
	"github.com/user/moviesearch/internal/render"
	"go.uber.org/zap"
)

// Home 首页，带 s 参数时直接执行搜索（无 JS 时的表单提交）
func (h *Handler) Home(c *gin.Context) {
	sid := middleware.GetSessionID(c)

	if query, ok := c.GetQuery("s"); ok {
		movies := h.runSearch(c.Request.Context(), sid, query)
		h.renderResults(c, query, model.SortAsc, movies)
		return
	}

	movies, found := h.Repos.Result.Current(sid)
	c.HTML(http.StatusOK, render.PageTemplate, h.pageData("", model.SortAsc, found, movies))
}

// SearchMovies 搜索结果片段
// 查询不做校验，空白查询同样请求上游，失败统一按无结果渲染
func (h *Handler) SearchMovies(c *gin.Context) {
	query := c.Query("s")
	sid := middleware.GetSessionID(c)

	movies := h.runSearch(c.Request.Context(), sid, query)
	h.renderResults(c, query, model.SortAsc, movies)
}

// runSearch 搜索并按请求顺序写入会话结果
// 如果期间已有更新的搜索生效，返回那次的结果，保证页面只会前进
func (h *Handler) runSearch(ctx context.Context, sid, query string) []model.MovieRecord {
	token := h.Repos.Result.Begin(sid)
	result := h.SearchService.Search(ctx, query)

	if h.Repos.Result.Commit(sid, token, result.Movies) {
		h.Metrics.ActiveResultStores.Set(float64(h.Repos.Result.Count()))
		return result.Movies
	}

	h.Metrics.StaleResultsTotal.Inc()
	h.Logger.Debug("丢弃过期的搜索结果",
		zap.String("query", query),
		zap.Uint64("token", token),
	)
	if current, ok := h.Repos.Result.Current(sid); ok {
		return current
	}
	return result.Movies
}
