// Package ratetoken signs rate keys returned by the quote step so checkout can
// trust the session, hotel and group they were quoted for.
package ratetoken

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Prefix distinguishes a signed token from a raw supplier rate key.
const Prefix = "rt."

var (
	ErrInvalidToken = errors.New("invalid rate token")
	ErrExpiredToken = errors.New("rate token expired")
)

type Claims struct {
	RateKey   string `json:"rk"`
	SessionID string `json:"sid"`
	HotelCode string `json:"hc"`
	GroupCode string `json:"gc"`
	jwt.RegisteredClaims
}

type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret), now: time.Now}
}

// IsToken reports whether s looks like a signed rate token rather than a raw key.
func IsToken(s string) bool {
	return strings.HasPrefix(s, Prefix)
}

func (s *Signer) Sign(claims Claims, ttl time.Duration) (string, error) {
	now := s.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return Prefix + signed, nil
}

func (s *Signer) Parse(token string) (*Claims, error) {
	if !IsToken(token) {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(strings.TrimPrefix(token, Prefix), &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.RateKey == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
