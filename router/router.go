package router

import (
	"context"
	"io/fs"
	"net/http"
	"strings"

	"expenses/api"
	"expenses/config"
	_ "expenses/docs"
	"expenses/logger"
	"expenses/middleware"
	"expenses/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Deps 路由依赖
type Deps struct {
	Service api.ExpenseService
	// Ping 健康检查使用，可为空
	Ping func(ctx context.Context) error
	Log  *zap.Logger
}

// SetupRouter 设置路由
// ctx 结束时限流器停止后台清理
func SetupRouter(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(logger.GinLogger(log))
	r.Use(CORSMiddleware(cfg.CORS.AllowOrigins))

	// 嵌入的静态页面
	staticFS, _ := fs.Sub(web.StaticFS, ".")
	r.GET("/", func(c *gin.Context) {
		content, err := fs.ReadFile(staticFS, "index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "加载页面失败")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", content)
	})

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 写接口限流，未开启时为空操作
	var write gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled {
		write = middleware.RateLimit(ctx, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	}

	expenseHandler := api.NewExpenseHandler(deps.Service, log)
	exportHandler := api.NewExportHandler(deps.Service, log)
	apiGroup := r.Group("/api")
	{
		expenses := apiGroup.Group("/expenses")
		{
			expenses.POST("", write, expenseHandler.Create)
			expenses.GET("", expenseHandler.List)
			expenses.DELETE("/:id", write, expenseHandler.Delete)
		}

		apiGroup.GET("/summary", expenseHandler.Summary)

		export := apiGroup.Group("/export")
		{
			export.GET("/csv", exportHandler.ExportCSV)
			export.GET("/excel", exportHandler.ExportExcel)
		}
	}

	// 健康检查
	healthHandler := api.NewHealthHandler(deps.Ping)
	r.GET("/health", healthHandler.Health)

	return r
}

// CORSMiddleware CORS 跨域中间件
// allowOrigins 为空或包含 "*" 时允许任意来源
func CORSMiddleware(allowOrigins []string) gin.HandlerFunc {
	allowAll := len(allowOrigins) == 0
	allowed := make(map[string]struct{}, len(allowOrigins))
	for _, o := range allowOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "":
			if _, ok := allowed[origin]; ok {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
