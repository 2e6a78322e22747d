package channelrank

import (
	"CastHub/internal/api/config"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// ContributionRecord 单个频道的贡献记录
type ContributionRecord struct {
	ChannelID    string  `json:"channel_id"`
	Contribution float64 `json:"contribution"`
}

type contributionsResponse struct {
	Contributions []ContributionRecord `json:"contributions"`
}

// Client 频道贡献辅助指标 API 客户端
type Client struct {
	httpClient *resty.Client
	now        func() time.Time
}

func NewClient(cfg config.ChannelRankConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(timeout)*time.Second).
		SetHeader("x-api-key", cfg.ApiKey).
		SetHeader("Accept", "application/json")

	return &Client{httpClient: client, now: time.Now}
}

// GetContributions 按用户名查询当月各频道贡献；上游 404 表示无数据而非错误
func (s *Client) GetContributions(ctx context.Context, handle string, timeframe string) ([]ContributionRecord, error) {
	var out contributionsResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParam("handle", handle).
		SetQueryParam("timeframe", timeframe).
		SetQueryParam("date", s.now().Format("2006-01-02")).
		SetResult(&out).
		Get("/v1/channel-contributions")
	if err != nil {
		return nil, errors.Wrap(err, "get channel contributions")
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, errors.New("upstream status " + strconv.Itoa(resp.StatusCode()))
	}

	return out.Contributions, nil
}
