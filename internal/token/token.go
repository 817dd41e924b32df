package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired is returned for a well-formed token past its expiry.
	ErrExpired = errors.New("token expired")
	// ErrInvalid is returned for any other verification failure: bad
	// signature, wrong signing method, malformed token, missing subject.
	ErrInvalid = errors.New("invalid token")
)

// Service issues and verifies signed, time-limited bearer tokens.
// Tokens are stateless HS256 JWTs carrying only the subject id; nothing
// is persisted server-side.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) (*Service, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token secret is required")
	}
	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a token for the given subject expiring after the
// configured TTL.
func (s *Service) Issue(subjectID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature, signing method and expiry, and returns the
// embedded subject id. Expiry and every other failure are reported as
// distinct conditions.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}
	if !token.Valid {
		return "", ErrInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}
