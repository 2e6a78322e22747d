package service

import (
	"CastHub/internal/model"
	"CastHub/internal/pkg/farcaster"
	"context"
	log "log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// 纯数字输入按 fid 处理，其余按用户名处理
var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// searchLimit 用户名模糊搜索取前若干条，命中第一条
const searchLimit = 5

type ResolverService interface {
	Resolve(ctx context.Context, rawInput string) (*model.Identity, error)
}

type resolverServiceImpl struct {
	fcClient *farcaster.Client
}

func NewResolverService(fcClient *farcaster.Client) ResolverService {
	return &resolverServiceImpl{
		fcClient: fcClient,
	}
}

// Resolve 把自由输入解析为账号身份，每屏重新解析，不做缓存
func (s *resolverServiceImpl) Resolve(ctx context.Context, rawInput string) (*model.Identity, error) {
	input := strings.TrimSpace(rawInput)
	if input == "" {
		return nil, ErrMissingInput
	}

	if digitsOnly.MatchString(input) {
		return s.resolveByFid(ctx, input)
	}
	return s.resolveByHandle(ctx, input)
}

func (s *resolverServiceImpl) resolveByFid(ctx context.Context, input string) (*model.Identity, error) {
	fid, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		// 纯数字但超出 uint64 范围，等同于不存在的 fid
		return nil, ErrUserNotFound
	}

	users, err := s.fcClient.GetUsersByFids(ctx, []uint64{fid})
	if err != nil {
		log.ErrorContext(ctx, "Resolve by fid failed", "fid", fid, "err", err)
		return nil, errors.Wrap(ErrUpstream, err.Error())
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}

	return toIdentity(&users[0]), nil
}

func (s *resolverServiceImpl) resolveByHandle(ctx context.Context, input string) (*model.Identity, error) {
	// @ 前缀视为用户名修饰，去掉后参与搜索
	query := strings.TrimPrefix(input, "@")
	if query == "" {
		return nil, ErrUserNotFound
	}

	users, err := s.fcClient.SearchUsers(ctx, query, searchLimit)
	if err != nil {
		log.ErrorContext(ctx, "Resolve by handle failed", "query", query, "err", err)
		return nil, errors.Wrap(ErrUpstream, err.Error())
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}

	return toIdentity(&users[0]), nil
}

func toIdentity(user *farcaster.UserRecord) *model.Identity {
	return &model.Identity{
		Fid:            user.Fid,
		Username:       user.Username,
		DisplayName:    user.DisplayName,
		AvatarURL:      user.Pfp.URL,
		FollowerCount:  user.FollowerCount,
		FollowingCount: user.FollowingCount,
	}
}
