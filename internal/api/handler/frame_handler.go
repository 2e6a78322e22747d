package handler

import (
	"CastHub/internal/api/dto"
	"CastHub/internal/model"
	"CastHub/internal/pkg/consts"
	"CastHub/internal/pkg/frame"
	"CastHub/internal/pkg/framestate"
	"CastHub/internal/pkg/util"
	"CastHub/internal/service"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

type FrameHandler struct {
	resolverSvc  service.ResolverService
	analyticsSvc service.AnalyticsService
	signer       *framestate.Signer
	publicURL    string
}

func NewFrameHandler(resolverSvc service.ResolverService, analyticsSvc service.AnalyticsService, signer *framestate.Signer, publicURL string) *FrameHandler {
	return &FrameHandler{
		resolverSvc:  resolverSvc,
		analyticsSvc: analyticsSvc,
		signer:       signer,
		publicURL:    strings.TrimRight(publicURL, "/"),
	}
}

// Index 爬虫首次 GET 时返回初始 home frame
func (s *FrameHandler) Index(c *gin.Context) {
	s.renderHome(c, model.SessionState{})
}

// Home home 屏，也是所有错误屏的返回目标
func (s *FrameHandler) Home(c *gin.Context) {
	state := s.mergedState(c)
	s.renderHome(c, state)
}

// UserInfo 用户信息屏
func (s *FrameHandler) UserInfo(c *gin.Context) {
	state := s.mergedState(c)

	identity, err := s.resolverSvc.Resolve(c.Request.Context(), state.RawInput)
	if err != nil {
		s.renderError(c, state, err)
		return
	}
	state = state.WithIdentity(identity)

	card := &framestate.CardClaims{
		Title: "User Info: " + identity.DisplayName,
		Lines: []string{
			"@" + identity.Username,
			fmt.Sprintf("Followers: %d", identity.FollowerCount),
			fmt.Sprintf("Following: %d", identity.FollowingCount),
		},
		Footer:    fmt.Sprintf("fid %d", identity.Fid),
		AvatarURL: identity.AvatarURL,
	}

	s.renderCard(c, "User Info", card, state, []frame.Button{
		{Label: "Back to Home", Target: s.target(consts.ScreenHome)},
		{Label: "Cast Analytics", Target: s.target(consts.ScreenCastAnalytics)},
		{Label: "Earnings", Target: s.target(consts.ScreenEarnings)},
	})
}

// CastAnalytics cast 聚合屏，频道贡献失败时只展示占位
func (s *FrameHandler) CastAnalytics(c *gin.Context) {
	state := s.mergedState(c)

	identity, err := s.resolverSvc.Resolve(c.Request.Context(), state.RawInput)
	if err != nil {
		s.renderError(c, state, err)
		return
	}
	state = state.WithIdentity(identity)

	agg, channels, err := s.analyticsSvc.GetCastAnalytics(c.Request.Context(), identity)
	if err != nil {
		s.renderError(c, state, err)
		return
	}

	lines := []string{
		fmt.Sprintf("Followers: %d", identity.FollowerCount),
		fmt.Sprintf("Casts (%d days): %d", agg.WindowDays, agg.TotalCasts),
		fmt.Sprintf("Reactions: %d  Recasts: %d  Replies: %d", agg.TotalReactions, agg.TotalRecasts, agg.TotalReplies),
		fmt.Sprintf("Engagement Rate: %s%%", agg.EngagementRate),
	}
	if channels.TopChannelID != "" {
		lines = append(lines,
			fmt.Sprintf("Top Channel: /%s (%.1f)", channels.TopChannelID, channels.TopContribution),
			fmt.Sprintf("Channel Contribution: %.1f", channels.TotalContribution),
		)
	} else {
		lines = append(lines, "No channel data this month")
	}

	card := &framestate.CardClaims{
		Title:  "Cast Analytics for @" + identity.Username,
		Lines:  lines,
		Footer: fmt.Sprintf("fid %d", identity.Fid),
	}

	s.renderCard(c, "Cast Analytics", card, state, []frame.Button{
		{Label: "Back to Home", Target: s.target(consts.ScreenHome)},
		{Label: "User Info", Target: s.target(consts.ScreenUserInfo)},
		{Label: "Earnings", Target: s.target(consts.ScreenEarnings)},
	})
}

// Earnings 生命周期收益屏
func (s *FrameHandler) Earnings(c *gin.Context) {
	state := s.mergedState(c)

	identity, err := s.resolverSvc.Resolve(c.Request.Context(), state.RawInput)
	if err != nil {
		s.renderError(c, state, err)
		return
	}
	state = state.WithIdentity(identity)

	earnings, err := s.analyticsSvc.GetEarnings(c.Request.Context(), identity)
	if err != nil {
		s.renderError(c, state, err)
		return
	}

	card := &framestate.CardClaims{
		Title: "Earnings for @" + identity.Username,
		Lines: []string{
			fmt.Sprintf("Total: %.2f", earnings.TotalEarnings),
			fmt.Sprintf("Casts: %.2f", earnings.CastEarnings),
			fmt.Sprintf("Frame Dev: %.2f", earnings.FrameDevEarnings),
			fmt.Sprintf("Other: %.2f", earnings.OtherEarnings),
		},
		Footer: "Timeframe: " + strings.ToLower(earnings.Timeframe),
	}

	s.renderCard(c, "Earnings", card, state, []frame.Button{
		{Label: "Back to Home", Target: s.target(consts.ScreenHome)},
		{Label: "User Info", Target: s.target(consts.ScreenUserInfo)},
	})
}

// mergedState 解析回传状态并合并本次输入；载荷非法时从空状态开始，不报错
func (s *FrameHandler) mergedState(c *gin.Context) model.SessionState {
	var payload dto.FrameActionDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.WarnContext(c.Request.Context(), "Bind frame payload failed", "err", err)
		return model.SessionState{}
	}
	if err := util.ValidateDTO(&payload.UntrustedData); err != nil {
		log.WarnContext(c.Request.Context(), "Frame payload invalid", "err", err)
		return model.SessionState{}
	}

	prev := s.signer.DecodeState(payload.UntrustedData.State)
	return model.MergeState(prev, payload.UntrustedData.InputText)
}

func (s *FrameHandler) renderHome(c *gin.Context, state model.SessionState) {
	card := &framestate.CardClaims{
		Title: "Farcaster Analytics Hub",
		Lines: []string{"Enter a FID or username to explore detailed analytics"},
	}

	s.renderFrame(c, &frame.Response{
		Title:            "Farcaster Analytics Hub",
		InputPlaceholder: "Enter FID or username",
	}, card, state, []frame.Button{
		{Label: "User Info", Target: s.target(consts.ScreenUserInfo)},
		{Label: "Cast Analytics", Target: s.target(consts.ScreenCastAnalytics)},
		{Label: "Earnings", Target: s.target(consts.ScreenEarnings)},
	})
}

// renderError 把业务错误映射为对应的说明屏，统一只带一个返回按钮
func (s *FrameHandler) renderError(c *gin.Context, state model.SessionState, err error) {
	card := &framestate.CardClaims{}

	switch {
	case errors.Is(err, service.ErrMissingInput):
		card.Title = "No FID or username provided"
		card.Lines = []string{"Type a FID or username on the home screen first"}
	case errors.Is(err, service.ErrUserNotFound):
		card.Title = "User not found"
		if state.RawInput != "" {
			card.Lines = []string{"Nothing matched \"" + state.RawInput + "\""}
		}
	case errors.Is(err, service.ErrEarningsNotFound):
		card.Title = "No earnings data"
		card.Lines = []string{"This user has no recorded earnings yet"}
	default:
		log.ErrorContext(c.Request.Context(), "Frame screen failed", "err", err)
		card.Title = "Something went wrong"
		card.Lines = []string{err.Error()}
	}

	s.renderCard(c, card.Title, card, state, []frame.Button{
		{Label: "Back to Home", Target: s.target(consts.ScreenHome)},
	})
}

func (s *FrameHandler) renderCard(c *gin.Context, title string, card *framestate.CardClaims, state model.SessionState, buttons []frame.Button) {
	s.renderFrame(c, &frame.Response{Title: title}, card, state, buttons)
}

func (s *FrameHandler) renderFrame(c *gin.Context, resp *frame.Response, card *framestate.CardClaims, state model.SessionState, buttons []frame.Button) {
	imageToken, err := s.signer.EncodeCard(card)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "Encode card token failed", "err", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	stateToken, err := s.signer.EncodeState(state)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "Encode state token failed", "err", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	resp.ImageURL = s.publicURL + "/frames/image?token=" + url.QueryEscape(imageToken)
	resp.PostURL = s.target(consts.ScreenHome)
	resp.State = stateToken
	resp.Buttons = buttons

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(resp.HTML()))
}

func (s *FrameHandler) target(screen string) string {
	return s.publicURL + "/frames/" + screen
}
