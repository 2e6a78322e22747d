package framestate

import (
	"CastHub/internal/model"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer 负责会话状态与图片令牌的签名和解析
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret string, ttlMinutes int) *Signer {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &Signer{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}
}

// StateClaims frame state 字段承载的会话状态
type StateClaims struct {
	RawInput string `json:"input,omitempty"`
	Fid      uint64 `json:"fid,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// CardClaims 图片令牌承载的已渲染视图，图片端点据此出图，不再回查上游
type CardClaims struct {
	Title     string   `json:"title"`
	Lines     []string `json:"lines,omitempty"`
	Footer    string   `json:"footer,omitempty"`
	AvatarURL string   `json:"avatar,omitempty"`
	jwt.RegisteredClaims
}

// EncodeState 生成会话状态令牌
func (s *Signer) EncodeState(state model.SessionState) (string, error) {
	claims := &StateClaims{
		RawInput: state.RawInput,
		Fid:      state.Fid,
		Username: state.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "CastHub",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// DecodeState 解析会话状态令牌；非法、过期或为空时回退为空状态，绝不报错
func (s *Signer) DecodeState(tokenString string) model.SessionState {
	if tokenString == "" {
		return model.SessionState{}
	}

	claims := &StateClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc)
	if err != nil || !token.Valid {
		return model.SessionState{}
	}

	return model.SessionState{
		RawInput: claims.RawInput,
		Fid:      claims.Fid,
		Username: claims.Username,
	}
}

// EncodeCard 生成图片令牌
func (s *Signer) EncodeCard(card *CardClaims) (string, error) {
	card.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "CastHub",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, card)
	return token.SignedString(s.secret)
}

// DecodeCard 验证并解析图片令牌
func (s *Signer) DecodeCard(tokenString string) (*CardClaims, error) {
	claims := &CardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("图片令牌解析失败: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("图片令牌无效或已过期")
	}

	return claims, nil
}

func (s *Signer) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("非预期的签名方法: %v", token.Header["alg"])
	}
	return s.secret, nil
}
