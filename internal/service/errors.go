package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
	BadGateway          = 502
)

// 错误文案直接呈现在 frame 错误屏上，面向 Farcaster 用户保持英文
var (
	ErrMissingInput     = errors.New("no FID or username provided")
	ErrUserNotFound     = errors.New("user not found")
	ErrEarningsNotFound = errors.New("no earnings data for this user")
	ErrUpstream         = errors.New("upstream service error")
)

var ErrorMap = map[error]int{
	ErrMissingInput:     BadRequest,
	ErrUserNotFound:     NotFound,
	ErrEarningsNotFound: NotFound,
	ErrUpstream:         BadGateway,
}
