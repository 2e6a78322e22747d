package handler_test

import (
	"CastHub/internal/api"
	"CastHub/internal/api/config"
	"CastHub/internal/api/dto"
	"CastHub/internal/api/handler"
	"CastHub/internal/pkg/channelrank"
	"CastHub/internal/pkg/farcaster"
	"CastHub/internal/pkg/framestate"
	"CastHub/internal/service"
	"bytes"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

const aliceJSON = `{"fid":1234,"username":"alice","display_name":"Alice","pfp":{"url":""},"follower_count":200,"following_count":50}`

func fakeUpstream(t *testing.T) *httptest.Server {
	t.Helper()

	castAt := func(daysAgo, reactions, recasts, replies int) string {
		ts := time.Now().AddDate(0, 0, -daysAgo).Format(time.RFC3339)
		return fmt.Sprintf(`{"timestamp":%q,"reactions":{"count":%d},"recasts":{"count":%d},"replies":{"count":%d}}`,
			ts, reactions, recasts, replies)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/farcaster/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("fids") {
		case "1234":
			fmt.Fprintf(w, `{"users":[%s]}`, aliceJSON)
		case "666":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"hub exploded"}`))
		default:
			_, _ = w.Write([]byte(`{"users":[]}`))
		}
	})
	mux.HandleFunc("/farcaster/user/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("q") == "alice" {
			fmt.Fprintf(w, `{"result":{"users":[%s]}}`, aliceJSON)
			return
		}
		_, _ = w.Write([]byte(`{"result":{"users":[]}}`))
	})
	mux.HandleFunc("/farcaster/cast", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"result":{"casts":[%s,%s,%s]}}`,
			castAt(1, 10, 1, 2), castAt(5, 0, 0, 0), castAt(10, 5, 0, 1))
	})
	mux.HandleFunc("/farcaster/earning-stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"earning_stats":[{"timeframe":"LIFETIME","all_earnings_amount":120.5,"cast_earnings_amount":100,"frame_dev_earnings_amount":15.5,"other_earnings_amount":5}]}`))
	})

	return httptest.NewServer(mux)
}

func newTestApp(t *testing.T) (*gin.Engine, *framestate.Signer, func()) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.Cfg = &config.Config{}

	fcServer := fakeUpstream(t)
	crServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	fcClient := farcaster.NewClient(config.FarcasterConfig{BaseURL: fcServer.URL, Timeout: 2})
	crClient := channelrank.NewClient(config.ChannelRankConfig{BaseURL: crServer.URL, Timeout: 2})
	signer := framestate.NewSigner("test-secret", 60)

	resolverSvc := service.NewResolverService(fcClient)
	analyticsSvc := service.NewAnalyticsService(fcClient, crClient, config.FrameConfig{})

	handlers := &api.HandlersGroup{
		FrameHandler: handler.NewFrameHandler(resolverSvc, analyticsSvc, signer, "https://hub.example.com"),
		ImageHandler: handler.NewImageHandler(signer, resty.New()),
		StatsHandler: handler.NewStatsHandler(resolverSvc, analyticsSvc),
	}
	router := api.SetupRouter(handlers)

	return router, signer, func() {
		fcServer.Close()
		crServer.Close()
	}
}

func postFrame(t *testing.T, router *gin.Engine, screen, inputText, state string) *httptest.ResponseRecorder {
	t.Helper()

	payload := dto.FrameActionDTO{
		UntrustedData: dto.FrameUntrustedData{
			Fid:         7,
			ButtonIndex: 1,
			InputText:   inputText,
			State:       state,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/frames/"+screen, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func metaContent(t *testing.T, html, property string) string {
	t.Helper()

	re := regexp.MustCompile(`property="` + regexp.QuoteMeta(property) + `" content="([^"]*)"`)
	m := re.FindStringSubmatch(html)
	if m == nil {
		t.Fatalf("meta %q not found in:\n%s", property, html)
	}
	return m[1]
}

func cardFromHTML(t *testing.T, signer *framestate.Signer, html string) *framestate.CardClaims {
	t.Helper()

	imageURL := metaContent(t, html, "fc:frame:image")
	u, err := url.Parse(imageURL)
	if err != nil {
		t.Fatalf("parse image url: %v", err)
	}
	card, err := signer.DecodeCard(u.Query().Get("token"))
	if err != nil {
		t.Fatalf("decode card token: %v", err)
	}
	return card
}

func TestInitialFrameGet(t *testing.T) {
	router, _, cleanup := newTestApp(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/frames", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	html := w.Body.String()
	if metaContent(t, html, "fc:frame") != "vNext" {
		t.Fatalf("missing vNext marker")
	}
	if metaContent(t, html, "fc:frame:input:text") == "" {
		t.Fatalf("home frame must offer a text input")
	}
	if metaContent(t, html, "fc:frame:button:3") == "" {
		t.Fatalf("home frame must offer three buttons")
	}
}

func TestUserInfoResolvesAndCarriesState(t *testing.T) {
	router, signer, cleanup := newTestApp(t)
	defer cleanup()

	w := postFrame(t, router, "user_info", "1234", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	html := w.Body.String()

	state := signer.DecodeState(metaContent(t, html, "fc:frame:state"))
	if state.RawInput != "1234" || state.Fid != 1234 || state.Username != "alice" {
		t.Fatalf("unexpected state %+v", state)
	}

	card := cardFromHTML(t, signer, html)
	if card.Title != "User Info: Alice" {
		t.Fatalf("unexpected card title %q", card.Title)
	}
	if card.Lines[0] != "@alice" {
		t.Fatalf("unexpected card lines %v", card.Lines)
	}
}

func TestStateCarriesAcrossScreens(t *testing.T) {
	router, signer, cleanup := newTestApp(t)
	defer cleanup()

	first := postFrame(t, router, "user_info", "1234", "")
	state := metaContent(t, first.Body.String(), "fc:frame:state")

	// 第二屏不带新输入，靠回传状态继续解析
	second := postFrame(t, router, "cast_analytics", "", state)
	card := cardFromHTML(t, signer, second.Body.String())
	if card.Title != "Cast Analytics for @alice" {
		t.Fatalf("unexpected card title %q", card.Title)
	}
}

func TestCastAnalyticsShowsRateAndChannelPlaceholder(t *testing.T) {
	router, signer, cleanup := newTestApp(t)
	defer cleanup()

	w := postFrame(t, router, "cast_analytics", "1234", "")
	card := cardFromHTML(t, signer, w.Body.String())

	joined := strings.Join(card.Lines, "\n")
	if !strings.Contains(joined, "Engagement Rate: 9.50%") {
		t.Fatalf("expected rate 9.50%%, got lines %v", card.Lines)
	}
	// 辅助指标 404 时展示占位而非报错
	if !strings.Contains(joined, "No channel data this month") {
		t.Fatalf("expected channel placeholder, got lines %v", card.Lines)
	}
}

func TestEarningsScreen(t *testing.T) {
	router, signer, cleanup := newTestApp(t)
	defer cleanup()

	w := postFrame(t, router, "earnings", "1234", "")
	card := cardFromHTML(t, signer, w.Body.String())

	if card.Title != "Earnings for @alice" {
		t.Fatalf("unexpected card title %q", card.Title)
	}
	if !strings.Contains(strings.Join(card.Lines, "\n"), "Total: 120.50") {
		t.Fatalf("unexpected card lines %v", card.Lines)
	}
}

func TestMissingInputPromptScreen(t *testing.T) {
	router, signer, cleanup := newTestApp(t)
	defer cleanup()

	w := postFrame(t, router, "user_info", "", "")
	html := w.Body.String()

	card := cardFromHTML(t, signer, html)
	if card.Title != "No FID or username provided" {
		t.Fatalf("unexpected card title %q", card.Title)
	}
	if metaContent(t, html, "fc:frame:button:1") != "Back to Home" {
		t.Fatalf("prompt screen must offer a single back button")
	}
	if strings.Contains(html, "fc:frame:button:2") {
		t.Fatalf("prompt screen must offer exactly one button")
	}
}

func TestUserNotFoundScreen(t *testing.T) {
	router, signer, cleanup := newTestApp(t)
	defer cleanup()

	w := postFrame(t, router, "user_info", "nosuchuser", "")
	card := cardFromHTML(t, signer, w.Body.String())
	if card.Title != "User not found" {
		t.Fatalf("unexpected card title %q", card.Title)
	}
}

func TestUpstreamFailureScreen(t *testing.T) {
	router, signer, cleanup := newTestApp(t)
	defer cleanup()

	w := postFrame(t, router, "user_info", "666", "")
	card := cardFromHTML(t, signer, w.Body.String())
	if card.Title != "Something went wrong" {
		t.Fatalf("unexpected card title %q", card.Title)
	}
	if !strings.Contains(strings.Join(card.Lines, "\n"), "hub exploded") {
		t.Fatalf("failure screen should echo upstream message, got %v", card.Lines)
	}
}

func TestImageEndpoint(t *testing.T) {
	router, signer, cleanup := newTestApp(t)
	defer cleanup()

	token, err := signer.EncodeCard(&framestate.CardClaims{Title: "User Info: Alice", Lines: []string{"@alice"}})
	if err != nil {
		t.Fatalf("encode card: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/frames/image?token="+url.QueryEscape(token), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}
	if _, err = png.Decode(bytes.NewReader(w.Body.Bytes())); err != nil {
		t.Fatalf("decode png: %v", err)
	}
}

func TestImageEndpointRejectsBadToken(t *testing.T) {
	router, _, cleanup := newTestApp(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/frames/image?token=garbage", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "unknown image token") {
		t.Fatalf("expected rejection, got %s", w.Body.String())
	}
}

func TestStatsAPI(t *testing.T) {
	router, _, cleanup := newTestApp(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/stats/casts?q=1234", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Code int `json:"code"`
		Data struct {
			User struct {
				Username string `json:"username"`
			} `json:"user"`
			TotalCasts     int    `json:"total_casts"`
			EngagementRate string `json:"engagement_rate"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Code != 200 || resp.Data.User.Username != "alice" {
		t.Fatalf("unexpected response %s", w.Body.String())
	}
	if resp.Data.TotalCasts != 3 || resp.Data.EngagementRate != "9.50" {
		t.Fatalf("unexpected analytics %s", w.Body.String())
	}
}

func TestStatsAPINotFound(t *testing.T) {
	router, _, cleanup := newTestApp(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/stats/user?q=nosuchuser", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Code != 404 {
		t.Fatalf("expected business code 404, got %s", w.Body.String())
	}
}
