package auth

import (
	"errors"
	"sort"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/trackerhq/project-tracker/internal/domain"
)

// TokenCodec issues and verifies signed identity tokens. The signing key is
// fixed at construction and never mutated, so a single codec is safe for
// unlimited concurrent callers.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec builds a codec with the process-wide signing key and token
// TTL. Changing the TTL is a deployment-time decision, never per-request.
func NewTokenCodec(secret string, ttlMinutes int) *TokenCodec {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMinutes) * time.Minute,
		now:    time.Now,
	}
}

// tokenClaims is the wire payload: registered sub/iat/exp plus the role set
// under the "groups" claim.
type tokenClaims struct {
	Groups []string `json:"groups"`
	jwt.RegisteredClaims
}

// Issue mints a signed token for the subject carrying its role set. The role
// set is sorted before signing so the encoding is order-independent.
func (tc *TokenCodec) Issue(subject string, roles []string) (string, time.Time, error) {
	now := tc.now()
	expiresAt := now.Add(tc.ttl)

	groups := append([]string(nil), roles...)
	sort.Strings(groups)

	claims := &tokenClaims{
		Groups: groups,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the principal the token
// encodes. Failures map onto the token error taxonomy; the codec never
// returns a partially resolved principal.
func (tc *TokenCodec) Verify(raw string) (domain.Principal, error) {
	parsed, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenBadSignature
		}
		return tc.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return tc.now() }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Principal{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrTokenBadSignature):
			return domain.Principal{}, ErrTokenBadSignature
		default:
			return domain.Principal{}, ErrTokenMalformed
		}
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return domain.Principal{}, ErrTokenMalformed
	}
	return domain.Principal{Name: claims.Subject, Roles: claims.Groups}, nil
}
