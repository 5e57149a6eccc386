package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every decode failure: bad signature,
// malformed structure, wrong token type or expiry. A single error kind
// keeps the codec from acting as an oracle for forgery attempts.
var ErrInvalidToken = errors.New("token is invalid")

// TokenTypeAccess is the token-type discriminator embedded in claims
const TokenTypeAccess = "access"

// Claims represents the JWT claims of a session token
type Claims struct {
	Role      string `json:"role"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// Codec issues and decodes signed session tokens. The secret, MAC
// algorithm and TTL come from configuration, fixed at construction.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a token codec. Unrecognized algorithm names fall
// back to HS256.
func NewCodec(secret, algorithm string, ttl time.Duration) *Codec {
	var method jwt.SigningMethod
	switch algorithm {
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		method = jwt.SigningMethodHS256
	}

	return &Codec{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the configured token lifetime
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue creates a signed access token for the given subject and role.
// Expiry is always issued-at plus the configured TTL.
func (c *Codec) Issue(subject, role string) (string, error) {
	now := c.now()
	claims := Claims{
		Role:      role,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(c.method, claims)
	return token.SignedString(c.secret)
}

// Decode verifies the signature, token type and expiry of a token and
// returns its claims. Expiry is exclusive: a token presented at exactly
// its expiry timestamp is rejected.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != TokenTypeAccess {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
