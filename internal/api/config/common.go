package config

// Config 配置主体
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Farcaster   FarcasterConfig   `mapstructure:"farcaster"`
	ChannelRank ChannelRankConfig `mapstructure:"channel_rank"`
	Frame       FrameConfig       `mapstructure:"frame"`
	Logstash    LogstashConfig    `mapstructure:"logstash"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	PublicURL string `mapstructure:"public_url"` // 对外可达的根地址，用于拼接 frame 图片与回传地址
}

// FarcasterConfig 数据分析 API 配置
type FarcasterConfig struct {
	BaseURL string `mapstructure:"base_url"`
	ApiKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // 秒
}

// ChannelRankConfig 频道贡献辅助指标 API 配置
type ChannelRankConfig struct {
	BaseURL string `mapstructure:"base_url"`
	ApiKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // 秒
}

// FrameConfig frame 行为配置
type FrameConfig struct {
	StateSecret string `mapstructure:"state_secret"` // 会话状态与图片令牌的签名密钥
	StateTTL    int    `mapstructure:"state_ttl"`    // 状态令牌有效期，分钟
	WindowDays  int    `mapstructure:"window_days"`  // cast 聚合窗口，默认 30
	CastLimit   int    `mapstructure:"cast_limit"`   // 单次拉取 cast 上限，默认 100
}

// LogstashConfig 远程日志配置，Address 为空时只写 stdout
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}
