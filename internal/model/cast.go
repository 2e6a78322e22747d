package model

import "time"

// CastSummary 单条 cast 的聚合视角，仅保留参与度相关字段
type CastSummary struct {
	Timestamp time.Time `json:"timestamp"`
	Reactions int       `json:"reactions"`
	Recasts   int       `json:"recasts"`
	Replies   int       `json:"replies"`
}

// EngagementAggregate 时间窗口内的 cast 聚合结果
type EngagementAggregate struct {
	TotalCasts     int    `json:"total_casts"`
	TotalReactions int    `json:"total_reactions"`
	TotalRecasts   int    `json:"total_recasts"`
	TotalReplies   int    `json:"total_replies"`
	WindowDays     int    `json:"window_days"`
	EngagementRate string `json:"engagement_rate"` // 两位小数的百分比，分母为零时恒为 "0.00"
}
