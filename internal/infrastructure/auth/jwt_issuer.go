package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/task-manager/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

var (
	ErrSigning      = errors.New("token signing failed")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the JWT payload. The user id travels under "id".
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// JWTIssuer implements ports.TokenIssuer with HS256 tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer builds an issuer. A non-positive ttl defaults to 24h.
func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for identity that expires after the configured TTL.
func (i *JWTIssuer) Issue(identity ports.Identity) (string, error) {
	if len(i.secret) == 0 {
		return "", fmt.Errorf("%w: empty secret key", ErrSigning)
	}

	now := i.now()
	claims := Claims{
		UserID: identity.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded identity.
func (i *JWTIssuer) Verify(token string) (ports.Identity, error) {
	if len(i.secret) == 0 {
		return ports.Identity{}, fmt.Errorf("%w: empty secret key", ErrInvalidToken)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return ports.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return ports.Identity{}, ErrInvalidToken
	}

	return ports.Identity{UserID: claims.UserID}, nil
}
