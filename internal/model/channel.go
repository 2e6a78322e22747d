package model

// ChannelContribution 辅助指标 API 返回的单个频道贡献记录
type ChannelContribution struct {
	ChannelID    string  `json:"channel_id"`
	Contribution float64 `json:"contribution"`
}

// ChannelStats 频道贡献的归约结果，TopChannelID 为空表示无数据
type ChannelStats struct {
	TopChannelID      string  `json:"top_channel_id"`
	TopContribution   float64 `json:"top_contribution"`
	TotalContribution float64 `json:"total_contribution"`
}
