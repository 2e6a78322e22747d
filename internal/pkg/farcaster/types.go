package farcaster

// UserRecord 上游用户记录
type UserRecord struct {
	Fid         uint64 `json:"fid"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Pfp         struct {
		URL string `json:"url"`
	} `json:"pfp"`
	FollowerCount  int `json:"follower_count"`
	FollowingCount int `json:"following_count"`
}

// CastRecord 上游 cast 记录，缺失的计数字段按零处理
type CastRecord struct {
	Hash      string `json:"hash"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Reactions struct {
		Count int `json:"count"`
	} `json:"reactions"`
	Recasts struct {
		Count int `json:"count"`
	} `json:"recasts"`
	Replies struct {
		Count int `json:"count"`
	} `json:"replies"`
}

// EarningStatRecord 上游收益统计记录
type EarningStatRecord struct {
	EntityID         string  `json:"entity_id"`
	Timeframe        string  `json:"timeframe"`
	AllEarnings      float64 `json:"all_earnings_amount"`
	CastEarnings     float64 `json:"cast_earnings_amount"`
	FrameDevEarnings float64 `json:"frame_dev_earnings_amount"`
	OtherEarnings    float64 `json:"other_earnings_amount"`
}

type usersResponse struct {
	Users []UserRecord `json:"users"`
}

type searchResponse struct {
	Result struct {
		Users []UserRecord `json:"users"`
	} `json:"result"`
}

type castsResponse struct {
	Result *struct {
		Casts []CastRecord `json:"casts"`
	} `json:"result"`
}

type earningStatsResponse struct {
	EarningStats []EarningStatRecord `json:"earning_stats"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
