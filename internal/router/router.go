package router

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/user/moviesearch/internal/handler"
	"github.com/user/moviesearch/internal/middleware"
)

// New 创建 gin 引擎并挂载中间件和路由
func New(h *handler.Handler) *gin.Engine {
	if h.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// 启用 gzip，/metrics 由 promhttp 自行压缩
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// Session 只用来保存会话 ID，结果集在服务端
	store := cookie.NewStore([]byte(h.Config.AppSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   h.Config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("moviesearch", store))

	// 模板
	r.HTMLRender = h.Renderer.HTMLRender()

	// 中间件
	r.Use(middleware.Logger(h.Logger, h.Metrics))
	r.Use(middleware.Security())

	RegisterRoutes(r, h)
	return r
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查和指标
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))

	// ==================== 页面 ====================
	page := r.Group("/")
	page.Use(middleware.SessionID(h.Logger))
	{
		page.GET("", h.Home)
	}

	// ==================== htmx API ====================
	api := r.Group("/api")
	api.Use(middleware.SessionID(h.Logger))
	{
		api.GET("/search", h.SearchMovies)
		api.POST("/sort", h.SortMovies)
	}

	// JSON 接口不依赖会话
	r.GET("/api/movies", h.MoviesAPI)
}
