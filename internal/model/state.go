package model

import "strings"

// SessionState 跨屏幕传递的会话状态，由 frame 的 state 字段携带
type SessionState struct {
	RawInput string `json:"input,omitempty"`
	Fid      uint64 `json:"fid,omitempty"`
	Username string `json:"username,omitempty"`
}

// MergeState 合并上一屏状态与本次输入，last-write-wins
// 新输入非空时覆盖原始输入，同时清空已解析的身份（身份必须与原始输入来自同一次解析）；
// 输入为空时原样保留上一屏状态
func MergeState(prev SessionState, newInput string) SessionState {
	input := strings.TrimSpace(newInput)
	if input == "" {
		return prev
	}
	if input == prev.RawInput {
		return prev
	}
	return SessionState{RawInput: input}
}

// WithIdentity 把解析结果写回状态
func (s SessionState) WithIdentity(identity *Identity) SessionState {
	if identity == nil {
		return s
	}
	s.Fid = identity.Fid
	s.Username = identity.Username
	return s
}
