package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/tracionar-api/internal/config"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

func newTestService(now time.Time) *Service {
	svc := NewService(&config.Config{Auth: config.Auth{Secret: "segredo-jwt"}}).(*Service)
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_GenerateAndValidateToken(t *testing.T) {
	now := time.Now()
	svc := newTestService(now)

	token, err := svc.GenerateToken(domain.Claims{UserID: 7, UserEmail: "gestor@tracionar.com", UserRoleID: 1}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "gestor@tracionar.com", claims.UserEmail)
	assert.Equal(t, 1, claims.UserRoleID)
}

func TestService_ValidateToken_Errors(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	otherSecret := func() string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{
			UserID:           7,
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
		})
		signed, err := token.SignedString([]byte("outro-segredo"))
		require.NoError(t, err)
		return signed
	}

	noSubject := func() string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
		})
		signed, err := token.SignedString([]byte("segredo-jwt"))
		require.NoError(t, err)
		return signed
	}

	expired := func() string {
		issuer := newTestService(now.Add(-2 * time.Hour))
		signed, err := issuer.GenerateToken(domain.Claims{UserID: 7}, time.Hour)
		require.NoError(t, err)
		return signed
	}

	tests := []struct {
		name    string
		token   func() string
		wantErr error
	}{
		{name: "token malformado", token: func() string { return "nao.e.jwt" }, wantErr: ErrInvalidToken},
		{name: "assinado com outro segredo", token: otherSecret, wantErr: ErrInvalidToken},
		{name: "token expirado", token: expired, wantErr: ErrExpiredToken},
		{name: "token sem usuário", token: noSubject, wantErr: ErrMissingSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(now)

			claims, err := svc.ValidateToken(tt.token())

			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsAuthorizationError(err))
		})
	}
}

func TestService_GenerateToken_RequiresUser(t *testing.T) {
	svc := newTestService(time.Now())

	_, err := svc.GenerateToken(domain.Claims{}, time.Hour)

	assert.ErrorIs(t, err, ErrMissingSubject)
}
