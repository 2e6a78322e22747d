package service

import (
	"CastHub/internal/api/config"
	"CastHub/internal/pkg/farcaster"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const aliceJSON = `{"fid":1234,"username":"alice","display_name":"Alice","pfp":{"url":"https://example.com/pfp.png"},"follower_count":200,"following_count":50}`

// fakeFarcaster 记录命中的上游路径
type fakeFarcaster struct {
	server     *httptest.Server
	userCalls  int
	searchCall int
}

func newFakeFarcaster(userBody, searchBody string) *fakeFarcaster {
	f := &fakeFarcaster{}
	mux := http.NewServeMux()
	mux.HandleFunc("/farcaster/user", func(w http.ResponseWriter, r *http.Request) {
		f.userCalls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(userBody))
	})
	mux.HandleFunc("/farcaster/user/search", func(w http.ResponseWriter, r *http.Request) {
		f.searchCall++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	})
	f.server = httptest.NewServer(mux)
	return f
}

func (f *fakeFarcaster) client() *farcaster.Client {
	return farcaster.NewClient(config.FarcasterConfig{BaseURL: f.server.URL, Timeout: 2})
}

func TestResolveDigitsUsesFidLookup(t *testing.T) {
	fake := newFakeFarcaster(`{"users":[`+aliceJSON+`]}`, `{"result":{"users":[]}}`)
	defer fake.server.Close()

	svc := NewResolverService(fake.client())
	identity, err := svc.Resolve(context.Background(), "1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Fid != 1234 || identity.Username != "alice" {
		t.Fatalf("unexpected identity %+v", identity)
	}
	if fake.userCalls != 1 || fake.searchCall != 0 {
		t.Fatalf("digit input must only hit fid lookup, user=%d search=%d", fake.userCalls, fake.searchCall)
	}
}

func TestResolveHandleUsesSearch(t *testing.T) {
	fake := newFakeFarcaster(`{"users":[]}`, `{"result":{"users":[`+aliceJSON+`,{"fid":9,"username":"alice2"}]}}`)
	defer fake.server.Close()

	svc := NewResolverService(fake.client())
	identity, err := svc.Resolve(context.Background(), "@alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 命中排序第一的结果
	if identity.Fid != 1234 {
		t.Fatalf("expected first ranked user, got %+v", identity)
	}
	if fake.userCalls != 0 || fake.searchCall != 1 {
		t.Fatalf("handle input must only hit search, user=%d search=%d", fake.userCalls, fake.searchCall)
	}
}

func TestResolveMissingInput(t *testing.T) {
	fake := newFakeFarcaster(`{"users":[]}`, `{"result":{"users":[]}}`)
	defer fake.server.Close()

	svc := NewResolverService(fake.client())
	for _, input := range []string{"", "   "} {
		if _, err := svc.Resolve(context.Background(), input); !errors.Is(err, ErrMissingInput) {
			t.Fatalf("input %q: expected ErrMissingInput, got %v", input, err)
		}
	}
	if fake.userCalls != 0 || fake.searchCall != 0 {
		t.Fatalf("empty input must not hit upstream")
	}
}

func TestResolveNotFound(t *testing.T) {
	fake := newFakeFarcaster(`{"users":[]}`, `{"result":{"users":[]}}`)
	defer fake.server.Close()

	svc := NewResolverService(fake.client())
	if _, err := svc.Resolve(context.Background(), "99999"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown fid, got %v", err)
	}
	if _, err := svc.Resolve(context.Background(), "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown handle, got %v", err)
	}
}

func TestResolveIdempotent(t *testing.T) {
	fake := newFakeFarcaster(`{"users":[`+aliceJSON+`]}`, `{"result":{"users":[]}}`)
	defer fake.server.Close()

	svc := NewResolverService(fake.client())
	first, err := svc.Resolve(context.Background(), "1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Resolve(context.Background(), "1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resolve not idempotent: %+v vs %+v", first, second)
	}
}

func TestResolveUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}))
	defer ts.Close()

	svc := NewResolverService(farcaster.NewClient(config.FarcasterConfig{BaseURL: ts.URL, Timeout: 2}))
	_, err := svc.Resolve(context.Background(), "1234")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
