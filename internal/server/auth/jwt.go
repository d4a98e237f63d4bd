package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenValidity is the fixed lifetime of an access token.
	TokenValidity = time.Hour

	// MinKeyBytes is the smallest HS256 key accepted (256 bits).
	MinKeyBytes = 32
)

// Claims carries the user id as an integer claim next to the registered ones.
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// Codec mints and verifies access tokens. It is immutable after construction
// and safe for concurrent use.
type Codec struct {
	key      []byte
	validity time.Duration
	now      func() time.Time
}

// CodecOption customizes a Codec at construction.
type CodecOption func(*Codec)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) { c.now = now }
}

// NewCodec decodes a standard base64 secret and builds a Codec. Any failure
// wraps common.ErrConfiguration and must abort startup.
func NewCodec(secretBase64 string, opts ...CodecOption) (*Codec, error) {
	secretBase64 = strings.TrimSpace(secretBase64)
	if secretBase64 == "" {
		return nil, fmt.Errorf("%w: signing secret is empty", common.ErrConfiguration)
	}

	key, err := base64.StdEncoding.DecodeString(secretBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: signing secret is not valid base64: %v", common.ErrConfiguration, err)
	}
	if len(key) < MinKeyBytes {
		return nil, fmt.Errorf("%w: signing key is %d bytes, need at least %d", common.ErrConfiguration, len(key), MinKeyBytes)
	}

	return NewCodecFromKey(key, opts...), nil
}

// NewCodecFromKey builds a Codec from raw key bytes without length checks.
func NewCodecFromKey(key []byte, opts ...CodecOption) *Codec {
	c := &Codec{
		key:      append([]byte(nil), key...),
		validity: TokenValidity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mint signs a token for userID, valid from now for TokenValidity.
func (c *Codec) Mint(userID int64) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
		},
	})

	tokenString, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify returns the user id bound to tokenString. Every failure wraps
// common.ErrInvalidToken together with one of ErrTokenMalformed,
// ErrTokenSignatureInvalid or ErrTokenExpired.
func (c *Codec) Verify(tokenString string) (int64, error) {
	claims := &Claims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.key, nil
	})
	if err != nil {
		return 0, invalid(classify(err))
	}
	if !token.Valid || claims.UserID <= 0 {
		return 0, invalid(common.ErrTokenMalformed)
	}

	return claims.UserID, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return common.ErrTokenSignatureInvalid
	default:
		return common.ErrTokenMalformed
	}
}

func invalid(reason error) error {
	return fmt.Errorf("%w: %w", common.ErrInvalidToken, reason)
}

// Reason names the diagnostic class of a token or identity error for logs and
// metrics labels.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, common.ErrTokenExpired):
		return "expired"
	case errors.Is(err, common.ErrTokenSignatureInvalid):
		return "signature_invalid"
	case errors.Is(err, common.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, common.ErrIdentityNotFound):
		return "identity_not_found"
	case errors.Is(err, common.ErrorUnauthorized):
		return "missing"
	default:
		return "internal"
	}
}
