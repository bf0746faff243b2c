// internal/services/auth/jwt.go
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type JWTService struct {
	secretKey []byte
	redis     *redis.Client
}

func NewJWTService(secretKey string, redisClient *redis.Client) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		redis:     redisClient,
	}
}

// GenerateToken выдаёт пару access/refresh токенов
func (s *JWTService) GenerateToken(userID int, email, role string) (string, string, error) {
	claims := jwt.MapClaims{
		"user_id": strconv.Itoa(userID),
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	refreshToken, err := s.issueRefreshToken(userID)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (s *JWTService) issueRefreshToken(userID int) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	token := hex.EncodeToString(raw)

	key := "refresh:" + token
	if err := s.redis.Set(context.Background(), key, userID, refreshTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return token, nil
}

// ValidateRefreshToken возвращает id пользователя по refresh-токену
func (s *JWTService) ValidateRefreshToken(token string) (int, error) {
	key := "refresh:" + token
	value, err := s.redis.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return 0, fmt.Errorf("refresh token not found or expired")
	} else if err != nil {
		return 0, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	userID, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("corrupt refresh token entry")
	}
	return userID, nil
}

// RevokeRefreshToken удаляет refresh-токен (logout)
func (s *JWTService) RevokeRefreshToken(token string) error {
	return s.redis.Del(context.Background(), "refresh:"+token).Err()
}
