package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/piresc/accounts/internal/pkg/apperror"
	"github.com/piresc/accounts/internal/pkg/models"
)

// DefaultExpiration is the session token lifetime when none is configured
const DefaultExpiration = time.Hour

// Claims carries the account id alongside the registered claims
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 session tokens with a process-wide secret
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewManager creates a token manager from the JWT configuration
func NewManager(cfg models.JWTConfig) *Manager {
	ttl := time.Duration(cfg.Expiration) * time.Minute
	if ttl <= 0 {
		ttl = DefaultExpiration
	}
	return &Manager{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// Issue signs a token for accountID and returns it with its expiry as unix seconds
func (m *Manager) Issue(accountID int64) (string, int64, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	claims := Claims{
		UserID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt.Unix(), nil
}

// Verify checks signature and expiry and returns the account id the token was issued for
func (m *Manager) Verify(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperror.ErrExpiredToken
		}
		return 0, fmt.Errorf("%w: %v", apperror.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == 0 {
		return 0, apperror.ErrInvalidToken
	}

	return claims.UserID, nil
}
