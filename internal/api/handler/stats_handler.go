package handler

import (
	"CastHub/internal/api/dto"
	"CastHub/internal/model"
	"CastHub/internal/pkg/response"
	"CastHub/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

// StatsHandler 把解析与聚合能力以 JSON API 暴露，供脚本与运营侧使用
type StatsHandler struct {
	resolverSvc  service.ResolverService
	analyticsSvc service.AnalyticsService
}

func NewStatsHandler(resolverSvc service.ResolverService, analyticsSvc service.AnalyticsService) *StatsHandler {
	return &StatsHandler{
		resolverSvc:  resolverSvc,
		analyticsSvc: analyticsSvc,
	}
}

func (s *StatsHandler) GetUserInfo(c *gin.Context) {
	identity, err := s.resolverSvc.Resolve(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserInfoDTO(identity))
}

func (s *StatsHandler) GetCastAnalytics(c *gin.Context) {
	identity, err := s.resolverSvc.Resolve(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	agg, channels, err := s.analyticsSvc.GetCastAnalytics(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := &dto.CastAnalyticsDTO{User: toUserInfoDTO(identity)}
	if err = copier.Copy(out, agg); err != nil {
		response.Error(c, err)
		return
	}
	if channels.TopChannelID != "" {
		channelDTO := &dto.ChannelStatsDTO{}
		if err = copier.Copy(channelDTO, channels); err != nil {
			response.Error(c, err)
			return
		}
		out.Channels = channelDTO
	}

	response.Success(c, out)
}

func (s *StatsHandler) GetEarnings(c *gin.Context) {
	identity, err := s.resolverSvc.Resolve(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	earnings, err := s.analyticsSvc.GetEarnings(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := &dto.EarningsDTO{User: toUserInfoDTO(identity)}
	if err = copier.Copy(out, earnings); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, out)
}

func toUserInfoDTO(identity *model.Identity) *dto.UserInfoDTO {
	out := &dto.UserInfoDTO{}
	if err := copier.Copy(out, identity); err != nil {
		log.Warn("Copy identity to dto failed", "err", err)
	}
	return out
}
