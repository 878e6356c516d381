package services

import (
	"fmt"
	"strconv"
	"time"

	"blog-api/config"
	"blog-api/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

type Claims struct {
	UserID    uint            `json:"user_id"`
	Username  string          `json:"username"`
	Role      models.UserRole `json:"role"`
	TokenType TokenType       `json:"token_type"`
	jwt.RegisteredClaims
}

func (c *Claims) Actor() *models.Actor {
	return &models.Actor{ID: c.UserID, Username: c.Username, Role: c.Role}
}

type TokenService interface {
	Issue(user *models.User, tokenType TokenType) (string, error)
	IssuePair(user *models.User) (access, refresh string, err error)
	Parse(tokenString string, expected TokenType) (*Claims, error)
}

type tokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        Clock
}

func NewTokenService(cfg config.JWTConfig, clock Clock) TokenService {
	return &tokenService{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        defaultClock(clock),
	}
}

func (s *tokenService) Issue(user *models.User, tokenType TokenType) (string, error) {
	ttl := s.accessTTL
	if tokenType == RefreshToken {
		ttl = s.refreshTTL
	}

	now := s.now()
	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *tokenService) IssuePair(user *models.User) (string, string, error) {
	access, err := s.Issue(user, AccessToken)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.Issue(user, RefreshToken)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Parse verifies the signature, lifetime and token type.
func (s *tokenService) Parse(tokenString string, expected TokenType) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}

	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrorUnauthorized{Message: "Given token not valid for any token type"}
	}
	if claims.TokenType != expected {
		return nil, models.ErrorUnauthorized{Message: fmt.Sprintf("Token has wrong type, expected %s", expected)}
	}
	if claims.UserID == 0 || !claims.Role.Valid() {
		return nil, models.ErrorUnauthorized{Message: "Token contained no recognizable user identification"}
	}
	return claims, nil
}
