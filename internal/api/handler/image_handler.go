package handler

import (
	"CastHub/internal/pkg/framestate"
	"CastHub/internal/pkg/render"
	"CastHub/internal/pkg/response"
	"bytes"
	"image"
	log "log/slog"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
)

type ImageHandler struct {
	signer       *framestate.Signer
	avatarClient *resty.Client
}

func NewImageHandler(signer *framestate.Signer, avatarClient *resty.Client) *ImageHandler {
	return &ImageHandler{
		signer:       signer,
		avatarClient: avatarClient,
	}
}

// Render 按已签名的图片令牌出图，令牌内即是视图数据，不回查上游
func (s *ImageHandler) Render(c *gin.Context) {
	claims, err := s.signer.DecodeCard(c.Query("token"))
	if err != nil {
		response.Fail(c, http.StatusNotFound, "unknown image token")
		return
	}

	card := &render.Card{
		Title:  claims.Title,
		Lines:  claims.Lines,
		Footer: claims.Footer,
		Avatar: s.fetchAvatar(c, claims.AvatarURL),
	}

	buf, err := render.Render(card)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "Render frame image failed", "err", err)
		response.Fail(c, http.StatusInternalServerError, "render failed")
		return
	}

	// 分析数据随时变化，禁止中间缓存
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf)
}

// fetchAvatar 拉取并解码头像，任何失败只降级为无头像
func (s *ImageHandler) fetchAvatar(c *gin.Context, avatarURL string) image.Image {
	if avatarURL == "" {
		return nil
	}

	resp, err := s.avatarClient.R().SetContext(c.Request.Context()).Get(avatarURL)
	if err != nil || resp.IsError() {
		log.WarnContext(c.Request.Context(), "Fetch avatar failed", "url", avatarURL, "err", err)
		return nil
	}

	img, err := imaging.Decode(bytes.NewReader(resp.Body()))
	if err != nil {
		log.WarnContext(c.Request.Context(), "Decode avatar failed", "url", avatarURL, "err", err)
		return nil
	}
	return img
}
