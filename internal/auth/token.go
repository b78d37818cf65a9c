// Package auth issues and verifies the stateless session tokens used
// by all protected routes. Tokens are HS256 JWTs carrying the user id
// as subject; nothing is persisted and early revocation is not
// supported.
package auth

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL bounds how long an issued token stays valid.
const DefaultTokenTTL = 30 * time.Minute

// TokenHeader is the request header carrying the session token.
const TokenHeader = "x-access-tokens"

var (
	// ErrTokenMissing indicates no token was supplied with the request.
	ErrTokenMissing = errors.New("token missing")

	// ErrTokenInvalid indicates the signature check failed or the
	// payload is malformed.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenExpired indicates the token was valid but is past its
	// expiry.
	ErrTokenExpired = errors.New("token expired")
)

// TokenService signs and verifies session tokens with a shared secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue produces a signed token for the given user. The token expires
// after the configured TTL.
func (s *TokenService) Issue(userID int) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the encoded user id.
// A verified token does not guarantee the user still exists; callers
// must re-fetch the user.
func (s *TokenService) Verify(tokenString string) (int, error) {
	if strings.TrimSpace(tokenString) == "" {
		return 0, ErrTokenMissing
	}

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	userID, err := strconv.Atoi(strings.TrimSpace(claims.Subject))
	if err != nil || userID < 1 {
		return 0, ErrTokenInvalid
	}
	return userID, nil
}

// FromRequest extracts a token from the x-access-tokens header, with
// Authorization: Bearer accepted as a fallback.
func FromRequest(r *http.Request) (string, error) {
	if token := strings.TrimSpace(r.Header.Get(TokenHeader)); token != "" {
		return token, nil
	}

	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if authz == "" {
		return "", ErrTokenMissing
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrTokenInvalid
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrTokenMissing
	}
	return token, nil
}
