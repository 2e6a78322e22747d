package model

// Identity 解析完成的 Farcaster 账号身份，仅在单次请求内存活，不做持久化
type Identity struct {
	Fid            uint64 `json:"fid"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	AvatarURL      string `json:"avatar_url"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
}
