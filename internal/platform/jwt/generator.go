package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrMissingSecret is returned when a token is requested without a signing secret.
var ErrMissingSecret = errors.New("jwt signing secret is not configured")

// Claims is the payload of an access token.
// The registered sub claim carries the user id as well; UserID repeats it
// for clients that only read the custom claims.
type Claims struct {
	UserID string `json:"uid"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Subject identifies the user a token is issued for.
type Subject struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   string
}

// Settings are passed on every call so the generator keeps no global state.
// A zero TTL means DefaultTTL.
type Settings struct {
	Issuer   string
	Audience string
	Secret   string
	TTL      time.Duration
}

// Generator issues HS256 signed access tokens.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a Generator that reads the wall clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Generate signs a token for subject and returns it along with its expiry in UTC.
// Each token gets a fresh jti.
func (g *Generator) Generate(subject Subject, settings Settings) (string, time.Time, error) {
	if settings.Secret == "" {
		return "", time.Time{}, ErrMissingSecret
	}
	ttl := settings.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	// NumericDate is second-precision; truncate so the returned expiry matches the exp claim.
	now := g.now().UTC().Truncate(time.Second)
	expiresAt := now.Add(ttl)

	claims := Claims{
		UserID: subject.UserID.String(),
		Name:   subject.Name,
		Email:  subject.Email,
		Role:   subject.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject.UserID.String(),
			Issuer:    settings.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if settings.Audience != "" {
		claims.Audience = jwt.ClaimStrings{settings.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(settings.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}
