package consts

// 各 frame 屏幕标识，同时作为路由片段
const (
	ScreenHome          = "home"
	ScreenUserInfo      = "user_info"
	ScreenCastAnalytics = "cast_analytics"
	ScreenEarnings      = "earnings"
)

// cast 聚合默认参数
const (
	DefaultWindowDays = 30
	DefaultCastLimit  = 100
)

// 收益查询固定参数
const (
	EntityTypeUser    = "user"
	TimeframeLifetime = "lifetime"
	TimeframeMonthly  = "monthly"
)

// ZeroRate 分母为零时的参与率
const ZeroRate = "0.00"
