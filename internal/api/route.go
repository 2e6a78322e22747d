package api

import (
	"CastHub/internal/api/middleware"
	"CastHub/internal/pkg/consts"
	"CastHub/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	r.GET("/", group.FrameHandler.Landing)

	frameGroup := r.Group("/frames")
	{
		// 首次抓取走 GET，屏幕间跳转走 POST
		frameGroup.GET("", group.FrameHandler.Index)
		frameGroup.POST("/"+consts.ScreenHome, group.FrameHandler.Home)
		frameGroup.POST("/"+consts.ScreenUserInfo, group.FrameHandler.UserInfo)
		frameGroup.POST("/"+consts.ScreenCastAnalytics, group.FrameHandler.CastAnalytics)
		frameGroup.POST("/"+consts.ScreenEarnings, group.FrameHandler.Earnings)

		frameGroup.GET("/image", group.ImageHandler.Render)
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		statsGroup := apiGroup.Group("/stats")
		{
			statsGroup.GET("/user", group.StatsHandler.GetUserInfo)
			statsGroup.GET("/casts", group.StatsHandler.GetCastAnalytics)
			statsGroup.GET("/earnings", group.StatsHandler.GetEarnings)
		}
	}

	return r
}
