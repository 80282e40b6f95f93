package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"maktaba/internal/entity"
)

// ErrTokenExpired marks a structurally valid token whose expiry has passed.
// The HTTP layer maps it to a retry-with-refresh hint.
var ErrTokenExpired = errors.New("token expired")

// Claims represents JWT claims for authenticated requests.
type Claims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager encapsulates generation and validation of the access/refresh token
// pair. The two token families are signed with separate secrets so a leaked
// access secret cannot be used to mint refresh tokens.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewManager creates a new JWT manager.
func NewManager(accessSecret, refreshSecret, issuer string, accessExpiry, refreshExpiry time.Duration) (*Manager, error) {
	access := strings.TrimSpace(accessSecret)
	refresh := strings.TrimSpace(refreshSecret)
	if access == "" || refresh == "" {
		return nil, errors.New("jwt secrets must not be empty")
	}
	if access == refresh {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if accessExpiry <= 0 {
		accessExpiry = time.Hour
	}
	if refreshExpiry <= 0 {
		refreshExpiry = time.Hour * 24 * 7
	}
	if strings.TrimSpace(issuer) == "" {
		issuer = "maktaba"
	}
	return &Manager{
		accessSecret:  []byte(access),
		refreshSecret: []byte(refresh),
		issuer:        issuer,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}, nil
}

// GenerateAccessToken issues a short-lived signed JWT for the provided user.
func (m *Manager) GenerateAccessToken(user *entity.DbUser) (string, time.Time, error) {
	return m.generate(user, m.accessSecret, m.accessExpiry)
}

// GenerateRefreshToken issues a long-lived signed JWT for the provided user.
// The caller is responsible for persisting the token string so it can be
// revoked before its cryptographic expiry.
func (m *Manager) GenerateRefreshToken(user *entity.DbUser) (string, time.Time, error) {
	return m.generate(user, m.refreshSecret, m.refreshExpiry)
}

func (m *Manager) generate(user *entity.DbUser, secret []byte, expiry time.Duration) (string, time.Time, error) {
	if m == nil {
		return "", time.Time{}, errors.New("jwt manager is nil")
	}
	if user == nil || user.ID == 0 {
		return "", time.Time{}, errors.New("invalid user for token generation")
	}
	now := time.Now().UTC()
	expiresAt := now.Add(expiry)

	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseAccessToken validates an access token and returns its claims. Expired
// tokens yield ErrTokenExpired so callers can distinguish them from tampered
// or malformed tokens.
func (m *Manager) ParseAccessToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, m.accessSecret)
}

// ParseRefreshToken validates a refresh token against the refresh secret.
func (m *Manager) ParseRefreshToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, m.refreshSecret)
}

func (m *Manager) parse(tokenString string, secret []byte) (*Claims, error) {
	if m == nil {
		return nil, errors.New("jwt manager is nil")
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// RefreshExpiry exposes the configured refresh-token lifetime.
func (m *Manager) RefreshExpiry() time.Duration {
	return m.refreshExpiry
}
