package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Service 负责签发与校验编辑会话令牌。
// 会话是匿名的：令牌只绑定会话 ID，没有账号体系。
type Service struct {
	secret []byte
	ttl    time.Duration
}

// Claims 表示会话令牌中的业务字段。
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// NewService 构造令牌服务。
func NewService(signingSecret string, ttl time.Duration) (*Service, error) {
	if signingSecret == "" {
		return nil, errors.New("signing secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &Service{secret: []byte(signingSecret), ttl: ttl}, nil
}

// IssueToken 为指定会话签发 HS256 令牌，有效期与会话 TTL 对齐。
func (s *Service) IssueToken(sessionID string) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken 校验令牌并返回其中的声明。
func (s *Service) ValidateToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}
	if claims.SessionID == "" {
		return nil, errors.New("session token missing session id")
	}
	return claims, nil
}
