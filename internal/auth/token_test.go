package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/study-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 360)

	tests := []struct {
		name      string
		subjectID string
		role      domain.Role
	}{
		{name: "user_token", subjectID: "U1", role: domain.RoleUser},
		{name: "admin_token", subjectID: "A1", role: domain.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, expiresAt, err := tm.GenerateToken(tt.subjectID, tt.role)
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now().Add(6*time.Hour), expiresAt, 5*time.Second)

			principal, err := tm.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.subjectID, principal.SubjectID)
			assert.Equal(t, tt.role, principal.Role)
		})
	}
}

func TestParseTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", 360)
	tm.ttl = -time.Minute

	token, _, err := tm.GenerateToken("U1", domain.RoleUser)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseTokenWrongKey(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 360).GenerateToken("U1", domain.RoleUser)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 360).ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenTampered(t *testing.T) {
	tm := NewTokenManager("test-secret", 360)
	token, _, err := tm.GenerateToken("U1", domain.RoleUser)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + "x" + parts[1][1:] + "." + parts[2]

	_, err = tm.ParseToken(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret", 360)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestParseTokenRejectsUnknownRole(t *testing.T) {
	tm := NewTokenManager("test-secret", 360)

	claims := &Claims{
		Role: "ROOT",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "U1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsMissingSubject(t *testing.T) {
	tm := NewTokenManager("test-secret", 360)

	claims := &Claims{
		Role: string(domain.RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
