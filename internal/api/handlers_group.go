package api

import "CastHub/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	FrameHandler *handler.FrameHandler
	ImageHandler *handler.ImageHandler
	StatsHandler *handler.StatsHandler
}
