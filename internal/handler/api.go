package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/moviesearch/internal/model"
	"github.com/user/moviesearch/internal/utils"
)

// MoviesQuery JSON 搜索参数
type MoviesQuery struct {
	Query string `form:"s"`
	Order string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// MoviesAPI JSON 搜索接口，可选按标题排序，不影响页面上的结果
func (h *Handler) MoviesAPI(c *gin.Context) {
	var q MoviesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, "order 只能是 asc 或 desc")
		return
	}

	result := h.SearchService.Search(c.Request.Context(), q.Query)
	movies := result.Movies
	if q.Order != "" {
		order := model.ParseSortOrder(q.Order)
		movies = h.Sorter.SortBy(movies, order)
		h.Metrics.SortsTotal.WithLabelValues(string(order)).Inc()
	}

	utils.Success(c, gin.H{
		"query":  q.Query,
		"total":  len(movies),
		"cached": result.Cached,
		"movies": movies,
	})
}
