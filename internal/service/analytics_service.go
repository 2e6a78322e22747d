package service

import (
	"CastHub/internal/api/config"
	"CastHub/internal/model"
	"CastHub/internal/pkg/channelrank"
	"CastHub/internal/pkg/consts"
	"CastHub/internal/pkg/farcaster"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/pkg/errors"
)

type AnalyticsService interface {
	AggregateCasts(ctx context.Context, identity *model.Identity, windowDays, limit int) (*model.EngagementAggregate, error)
	GetEarnings(ctx context.Context, identity *model.Identity) (*model.EarningsSnapshot, error)
	GetChannelStats(ctx context.Context, username string) (*model.ChannelStats, error)
	GetCastAnalytics(ctx context.Context, identity *model.Identity) (*model.EngagementAggregate, *model.ChannelStats, error)
}

type analyticsServiceImpl struct {
	fcClient   *farcaster.Client
	crClient   *channelrank.Client
	windowDays int
	castLimit  int
}

func NewAnalyticsService(fcClient *farcaster.Client, crClient *channelrank.Client, cfg config.FrameConfig) AnalyticsService {
	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = consts.DefaultWindowDays
	}
	castLimit := cfg.CastLimit
	if castLimit <= 0 {
		castLimit = consts.DefaultCastLimit
	}

	return &analyticsServiceImpl{
		fcClient:   fcClient,
		crClient:   crClient,
		windowDays: windowDays,
		castLimit:  castLimit,
	}
}

// AggregateCasts 拉取最近 cast 并在时间窗口内归约出参与度统计
// 参与率采用按粉丝数口径：(总互动数 / 粉丝数) × 100，任一分母项为零时恒为 "0.00"
func (s *analyticsServiceImpl) AggregateCasts(ctx context.Context, identity *model.Identity, windowDays, limit int) (*model.EngagementAggregate, error) {
	if windowDays <= 0 {
		windowDays = s.windowDays
	}
	if limit <= 0 {
		limit = s.castLimit
	}

	casts, err := s.fcClient.GetCastsByFid(ctx, identity.Fid, limit)
	if err != nil {
		log.ErrorContext(ctx, "Fetch casts failed", "fid", identity.Fid, "err", err)
		return nil, errors.Wrap(ErrUpstream, err.Error())
	}

	cutoff := time.Now().AddDate(0, 0, -windowDays)

	agg := &model.EngagementAggregate{WindowDays: windowDays}
	for i := range casts {
		ts, err := time.Parse(time.RFC3339, casts[i].Timestamp)
		if err != nil || ts.Before(cutoff) {
			// 时间戳缺失或超出窗口的 cast 不参与统计
			continue
		}

		agg.TotalCasts++
		agg.TotalReactions += nonNegative(casts[i].Reactions.Count)
		agg.TotalRecasts += nonNegative(casts[i].Recasts.Count)
		agg.TotalReplies += nonNegative(casts[i].Replies.Count)
	}

	agg.EngagementRate = engagementRate(agg, identity.FollowerCount)
	return agg, nil
}

// GetEarnings 查询账号生命周期收益，取第一条统计记录原样返回
func (s *analyticsServiceImpl) GetEarnings(ctx context.Context, identity *model.Identity) (*model.EarningsSnapshot, error) {
	stats, err := s.fcClient.GetEarningStats(ctx, consts.EntityTypeUser, identity.Fid, consts.TimeframeLifetime)
	if err != nil {
		log.ErrorContext(ctx, "Fetch earning stats failed", "fid", identity.Fid, "err", err)
		return nil, errors.Wrap(ErrUpstream, err.Error())
	}
	if len(stats) == 0 {
		return nil, ErrEarningsNotFound
	}

	first := stats[0]
	return &model.EarningsSnapshot{
		Timeframe:        first.Timeframe,
		TotalEarnings:    first.AllEarnings,
		CastEarnings:     first.CastEarnings,
		FrameDevEarnings: first.FrameDevEarnings,
		OtherEarnings:    first.OtherEarnings,
	}, nil
}

// GetChannelStats 查询当月频道贡献并归约；上游 404 归约为空结果
func (s *analyticsServiceImpl) GetChannelStats(ctx context.Context, username string) (*model.ChannelStats, error) {
	records, err := s.crClient.GetContributions(ctx, username, consts.TimeframeMonthly)
	if err != nil {
		log.WarnContext(ctx, "Fetch channel contributions failed", "username", username, "err", err)
		return nil, errors.Wrap(ErrUpstream, err.Error())
	}

	stats := &model.ChannelStats{}
	for i := range records {
		stats.TotalContribution += records[i].Contribution
		// 并列时保留先出现的频道
		if stats.TopChannelID == "" || records[i].Contribution > stats.TopContribution {
			stats.TopChannelID = records[i].ChannelID
			stats.TopContribution = records[i].Contribution
		}
	}
	return stats, nil
}

// GetCastAnalytics 组合 cast 聚合与频道贡献；频道侧失败只降级为空数据，不影响主结果
func (s *analyticsServiceImpl) GetCastAnalytics(ctx context.Context, identity *model.Identity) (*model.EngagementAggregate, *model.ChannelStats, error) {
	agg, err := s.AggregateCasts(ctx, identity, 0, 0)
	if err != nil {
		return nil, nil, err
	}

	channels, err := s.GetChannelStats(ctx, identity.Username)
	if err != nil {
		channels = &model.ChannelStats{}
	}

	return agg, channels, nil
}

// engagementRate 按粉丝数口径计算参与率，固定两位小数
func engagementRate(agg *model.EngagementAggregate, followerCount int) string {
	if agg.TotalCasts == 0 || followerCount <= 0 {
		return consts.ZeroRate
	}

	interactions := agg.TotalReactions + agg.TotalRecasts + agg.TotalReplies
	rate := float64(interactions) / float64(followerCount) * 100
	if rate < 0 {
		return consts.ZeroRate
	}
	return fmt.Sprintf("%.2f", rate)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
