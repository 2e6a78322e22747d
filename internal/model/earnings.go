package model

// EarningsSnapshot 上游收益统计的第一条记录，原样透传
type EarningsSnapshot struct {
	Timeframe        string  `json:"timeframe"`
	TotalEarnings    float64 `json:"total_earnings"`
	CastEarnings     float64 `json:"cast_earnings"`
	FrameDevEarnings float64 `json:"frame_dev_earnings"`
	OtherEarnings    float64 `json:"other_earnings"`
}
