package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/moviesearch/internal/middleware"
	"github.com/user/moviesearch/internal/model"
	"github.com/user/moviesearch/internal/render"
	"go.uber.org/zap"
)

// SortRequest 排序请求
type SortRequest struct {
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

// SortMovies 对当前结果按标题重新排序并整体重绘容器
func (h *Handler) SortMovies(c *gin.Context) {
	var req SortRequest
	if err := c.ShouldBind(&req); err != nil {
		// 非法方向按默认升序处理，不报错
		h.Logger.Warn("无效的排序方向", zap.String("sortOrder", c.Request.FormValue("sortOrder")), zap.Error(err))
		req.SortOrder = ""
	}
	order := model.ParseSortOrder(req.SortOrder)
	sid := middleware.GetSessionID(c)

	sorted := h.sortCurrent(c, sid, order)
	h.Metrics.SortsTotal.WithLabelValues(string(order)).Inc()

	h.renderResults(c, "", order, sorted)
}

// maxSortAttempts 排序期间不断有新搜索生效时的重试上限
const maxSortAttempts = 3

// sortCurrent 读取会话结果、排序并按读取时的序号写回
// 写回被拒绝说明期间有更新的搜索生效，重新读取后再排
func (h *Handler) sortCurrent(c *gin.Context, sid string, order model.SortOrder) []model.MovieRecord {
	var legacy []model.MovieRecord
	legacyRead, legacyOK := false, false

	var sorted []model.MovieRecord
	for attempt := 1; ; attempt++ {
		movies, token, found := h.Repos.Result.Snapshot(sid)
		if !found && strings.HasPrefix(c.ContentType(), "text/html") {
			// 会话里没有结果时，回读客户端提交的卡片标记
			if !legacyRead {
				legacyRead = true
				parsed, err := render.ParseCards(c.Request.Body)
				if err != nil {
					h.Logger.Warn("回读卡片失败", zap.Error(err))
				} else {
					legacy, legacyOK = parsed, true
				}
			}
			if legacyOK {
				movies, found = legacy, true
			}
		}

		sorted = h.Sorter.SortBy(movies, order)
		if !found || h.Repos.Result.Replace(sid, token, sorted) {
			return sorted
		}

		h.Metrics.StaleResultsTotal.Inc()
		if attempt >= maxSortAttempts {
			h.Logger.Warn("排序结果多次被新搜索覆盖，只渲染不写回", zap.Int("attempts", attempt))
			return sorted
		}
	}
}
