package wire

import (
	"CastHub/internal/api"
	"CastHub/internal/api/config"
	"CastHub/internal/api/handler"
	"CastHub/internal/pkg/channelrank"
	"CastHub/internal/pkg/farcaster"
	"CastHub/internal/pkg/framestate"
	"CastHub/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router *gin.Engine
}

func BuildApplication(cfg *config.Config) (*ApplicationContainer, error) {
	fcClient := farcaster.NewClient(cfg.Farcaster)
	crClient := channelrank.NewClient(cfg.ChannelRank)
	signer := framestate.NewSigner(cfg.Frame.StateSecret, cfg.Frame.StateTTL)

	resolverSvc := service.NewResolverService(fcClient)
	analyticsSvc := service.NewAnalyticsService(fcClient, crClient, cfg.Frame)

	// 头像拉取走独立客户端，不挂上游 API 的鉴权头
	avatarClient := resty.New().SetTimeout(10 * time.Second)

	handlers := &api.HandlersGroup{
		FrameHandler: handler.NewFrameHandler(resolverSvc, analyticsSvc, signer, cfg.Server.PublicURL),
		ImageHandler: handler.NewImageHandler(signer, avatarClient),
		StatsHandler: handler.NewStatsHandler(resolverSvc, analyticsSvc),
	}

	router := api.SetupRouter(handlers)

	return &ApplicationContainer{
		Router: router,
	}, nil
}
