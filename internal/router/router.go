package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/moodlog/internal/db"
	"github.com/moodlog/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("moodlog_session", store))

	api := handler.NewAPI(db.DB)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	admin := r.Group("/admin")
	{
		admin.POST("/login", handler.Login)
		admin.GET("/logout", handler.Logout)

		// 需要认证的 API 路由
		auth := admin.Group("/api")
		auth.Use(handler.AuthRequired())
		{
			auth.PUT("/entries", api.SaveEntry)
			auth.GET("/entries", api.ListEntries)
			auth.GET("/entries/:date", api.GetEntry)
			auth.DELETE("/entries/:date", api.DeleteEntry)
			auth.DELETE("/entries", api.ClearEntries)

			auth.GET("/insights", api.GetInsights)
			auth.GET("/insights/:date", api.GetInsightForDate)

			auth.GET("/chart/mood-stress", api.GetMoodStressChart)

			auth.GET("/export", api.ExportJSON)
			auth.GET("/export/csv", api.ExportCSV)
		}
	}

	return r
}
