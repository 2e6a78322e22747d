package farcaster

import (
	"CastHub/internal/api/config"
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Client 数据分析 API 客户端，进程启动时构造一次，注入使用，不做全局单例
type Client struct {
	httpClient *resty.Client
}

func NewClient(cfg config.FarcasterConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(timeout) * time.Second).
		SetHeader("x-api-key", cfg.ApiKey).
		SetHeader("Accept", "application/json")

	return &Client{httpClient: client}
}

// GetUsersByFids 按 fid 批量查询用户
func (s *Client) GetUsersByFids(ctx context.Context, fids []uint64) ([]UserRecord, error) {
	strs := make([]string, 0, len(fids))
	for _, fid := range fids {
		strs = append(strs, strconv.FormatUint(fid, 10))
	}

	var out usersResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParam("fids", strings.Join(strs, ",")).
		SetResult(&out).
		Get("/farcaster/user")
	if err != nil {
		return nil, errors.Wrap(err, "get users by fids")
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}

	return out.Users, nil
}

// SearchUsers 按用户名模糊搜索，返回按相关度排序的用户列表
func (s *Client) SearchUsers(ctx context.Context, query string, limit int) ([]UserRecord, error) {
	var out searchResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&out).
		Get("/farcaster/user/search")
	if err != nil {
		return nil, errors.Wrap(err, "search users")
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}

	return out.Result.Users, nil
}

// GetCastsByFid 拉取指定作者最近的 cast 列表
func (s *Client) GetCastsByFid(ctx context.Context, fid uint64, limit int) ([]CastRecord, error) {
	var out castsResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParam("fid", strconv.FormatUint(fid, 10)).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&out).
		Get("/farcaster/cast")
	if err != nil {
		return nil, errors.Wrap(err, "get casts by fid")
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}

	// result 或 casts 缺失视为结构非法
	if out.Result == nil || out.Result.Casts == nil {
		return nil, errors.New("invalid casts payload")
	}

	return out.Result.Casts, nil
}

// GetEarningStats 查询指定实体的收益统计
func (s *Client) GetEarningStats(ctx context.Context, entityType string, entityID uint64, timeframe string) ([]EarningStatRecord, error) {
	var out earningStatsResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParam("entity_type", entityType).
		SetQueryParam("entity_id", strconv.FormatUint(entityID, 10)).
		SetQueryParam("timeframe", timeframe).
		SetResult(&out).
		Get("/farcaster/earning-stats")
	if err != nil {
		return nil, errors.Wrap(err, "get earning stats")
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}

	return out.EarningStats, nil
}

// apiError 把非 2xx 响应转成带上游信息的错误
func apiError(resp *resty.Response) error {
	var body errorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if body.Message != "" {
			return errors.Errorf("upstream %d: %s", resp.StatusCode(), body.Message)
		}
		if body.Error != "" {
			return errors.Errorf("upstream %d: %s", resp.StatusCode(), body.Error)
		}
	}
	return errors.Errorf("upstream status %d", resp.StatusCode())
}
