package dto

// FrameActionDTO Farcaster 客户端回传的 frame 交互载荷
type FrameActionDTO struct {
	UntrustedData FrameUntrustedData `json:"untrustedData" binding:"required"`
	TrustedData   FrameTrustedData   `json:"trustedData"`
}

// FrameUntrustedData 交互的未验证部分，状态与输入从这里取
type FrameUntrustedData struct {
	Fid         uint64 `json:"fid"`
	URL         string `json:"url"`
	MessageHash string `json:"messageHash"`
	Timestamp   int64  `json:"timestamp"`
	Network     int    `json:"network"`
	ButtonIndex int    `json:"buttonIndex" validate:"min=0,max=4"`
	InputText   string `json:"inputText" validate:"max=256"`
	State       string `json:"state" validate:"max=4096"`
}

// FrameTrustedData Hub 签名的消息字节，本服务不自行校验
type FrameTrustedData struct {
	MessageBytes string `json:"messageBytes"`
}
