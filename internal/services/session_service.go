package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ruralpay/banksim/internal/config"
)

// SessionService issues and checks bearer tokens. Revoked tokens are kept in
// Redis until they would have expired anyway; without Redis, revocation is a no-op.
type SessionService struct {
	redis  *redis.Client
	secret []byte
	expiry time.Duration
	now    Clock
}

func NewSessionService(cfg config.JWTConfig, redisClient *redis.Client, now Clock) *SessionService {
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		redis:  redisClient,
		secret: []byte(cfg.SecretKey),
		expiry: cfg.Expiry(),
		now:    now,
	}
}

func (s *SessionService) Issue(username string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(s.expiry).Unix(),
	})
	return token.SignedString(s.secret)
}

// Validate returns the username a live, unrevoked token was issued to.
func (s *SessionService) Validate(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", authError("Invalid token")
	}

	username, err := token.Claims.GetSubject()
	if err != nil || username == "" {
		return "", authError("Invalid token")
	}

	if s.redis != nil {
		n, err := s.redis.Exists(ctx, blacklistKey(tokenString)).Result()
		if err != nil {
			return "", fmt.Errorf("failed to check token blacklist: %w", err)
		}
		if n > 0 {
			return "", authError("Token has been revoked")
		}
	}
	return username, nil
}

func (s *SessionService) Revoke(ctx context.Context, tokenString string) error {
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Set(ctx, blacklistKey(tokenString), "1", s.expiry).Err(); err != nil {
		log.Printf("[SESSION] Failed to blacklist token: %v", err)
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}
