package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/tracionar-api/internal/config"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

// Authenticator valida os tokens de sessão emitidos para o painel
type Authenticator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
	GenerateToken(claims domain.Claims, ttl time.Duration) (string, error)
}

type Service struct {
	secret []byte
	now    func() time.Time
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		secret: []byte(cfg.Auth.Secret),
		now:    time.Now,
	}
}

// GenerateToken assina as claims com HS256; usado por ferramentas internas e testes
func (s *Service) GenerateToken(claims domain.Claims, ttl time.Duration) (string, error) {
	if claims.UserID == 0 {
		return "", ErrMissingSubject
	}

	issuedAt := s.now()
	claims.IssuedAt = jwt.NewNumericDate(issuedAt)
	claims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == 0 {
		return nil, ErrMissingSubject
	}

	return claims, nil
}
