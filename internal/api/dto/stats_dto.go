package dto

// UserInfoDTO JSON API 的用户信息返回
type UserInfoDTO struct {
	Fid            uint64 `json:"fid"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	AvatarURL      string `json:"avatar_url"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
}

// CastAnalyticsDTO JSON API 的 cast 聚合返回
type CastAnalyticsDTO struct {
	User           *UserInfoDTO     `json:"user"`
	TotalCasts     int              `json:"total_casts"`
	TotalReactions int              `json:"total_reactions"`
	TotalRecasts   int              `json:"total_recasts"`
	TotalReplies   int              `json:"total_replies"`
	WindowDays     int              `json:"window_days"`
	EngagementRate string           `json:"engagement_rate"`
	Channels       *ChannelStatsDTO `json:"channels,omitempty"`
}

// ChannelStatsDTO 频道贡献归约结果
type ChannelStatsDTO struct {
	TopChannelID      string  `json:"top_channel_id"`
	TopContribution   float64 `json:"top_contribution"`
	TotalContribution float64 `json:"total_contribution"`
}

// EarningsDTO JSON API 的收益返回
type EarningsDTO struct {
	User             *UserInfoDTO `json:"user"`
	Timeframe        string       `json:"timeframe"`
	TotalEarnings    float64      `json:"total_earnings"`
	CastEarnings     float64      `json:"cast_earnings"`
	FrameDevEarnings float64      `json:"frame_dev_earnings"`
	OtherEarnings    float64      `json:"other_earnings"`
}
