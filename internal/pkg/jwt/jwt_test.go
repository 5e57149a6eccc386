package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

func newTestCodec(secret string, ttl time.Duration) *Codec {
	return NewCodec(secret, "HS256", ttl)
}

func TestIssueAndDecode(t *testing.T) {
	c := newTestCodec("test-secret", 30*time.Minute)

	token, err := c.Issue("borrower@example.com", "borrower")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := c.Decode(token)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	if claims.Subject != "borrower@example.com" {
		t.Errorf("subject: got %q, want %q", claims.Subject, "borrower@example.com")
	}
	if claims.Role != "borrower" {
		t.Errorf("role: got %q, want %q", claims.Role, "borrower")
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("token type: got %q, want %q", claims.TokenType, TokenTypeAccess)
	}
}

func TestDecodeWrongSecret(t *testing.T) {
	issuer := newTestCodec("secret-one", 30*time.Minute)
	verifier := newTestCodec("secret-two", 30*time.Minute)

	token, err := issuer.Issue("user@example.com", "admin")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Decode(token); err != ErrInvalidToken {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestDecodeMalformedToken(t *testing.T) {
	c := newTestCodec("test-secret", 30*time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := c.Decode(token); err != ErrInvalidToken {
			t.Errorf("Decode(%q): got %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestDecodeTamperedToken(t *testing.T) {
	c := newTestCodec("test-secret", 30*time.Minute)

	token, err := c.Issue("user@example.com", "borrower")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := c.Decode(tampered); err != ErrInvalidToken {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := 30 * time.Minute

	c := newTestCodec("test-secret", ttl)
	c.now = func() time.Time { return issuedAt }

	token, err := c.Issue("user@example.com", "analyst")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// One second before expiry the token is still valid
	c.now = func() time.Time { return issuedAt.Add(ttl - time.Second) }
	if _, err := c.Decode(token); err != nil {
		t.Errorf("token just before expiry: got %v, want nil", err)
	}

	// At the exact expiry instant the token is rejected
	c.now = func() time.Time { return issuedAt.Add(ttl) }
	if _, err := c.Decode(token); err != ErrInvalidToken {
		t.Errorf("token at expiry instant: got %v, want ErrInvalidToken", err)
	}

	// And after expiry it stays rejected
	c.now = func() time.Time { return issuedAt.Add(ttl + time.Hour) }
	if _, err := c.Decode(token); err != ErrInvalidToken {
		t.Errorf("token after expiry: got %v, want ErrInvalidToken", err)
	}
}

func TestDecodeRejectsWrongTokenType(t *testing.T) {
	c := newTestCodec("test-secret", 30*time.Minute)

	// A well-signed token whose type discriminator is not "access" must
	// be rejected like any other invalid token
	now := time.Now()
	claims := Claims{
		Role:      "borrower",
		TokenType: "refresh",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "user@example.com",
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := c.Decode(token); err != ErrInvalidToken {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestNewCodecAlgorithms(t *testing.T) {
	for _, alg := range []string{"HS256", "HS384", "HS512", "RS256", ""} {
		c := NewCodec("test-secret", alg, time.Minute)

		token, err := c.Issue("user@example.com", "admin")
		if err != nil {
			t.Fatalf("Issue with algorithm %q returned error: %v", alg, err)
		}
		if _, err := c.Decode(token); err != nil {
			t.Errorf("round trip with algorithm %q failed: %v", alg, err)
		}
	}
}
