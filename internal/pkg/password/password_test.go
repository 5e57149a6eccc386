package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	// Low cost keeps the test fast
	h := NewHasher(4)

	hash, err := h.Hash("Correct1horse")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "Correct1horse" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !h.Verify("Correct1horse", hash) {
		t.Error("expected matching password to verify")
	}
	if h.Verify("Wrong1horse", hash) {
		t.Error("expected non-matching password to fail")
	}
}

func TestHashProducesDifferentDigests(t *testing.T) {
	h := NewHasher(4)

	first, err := h.Hash("Correct1horse")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := h.Hash("Correct1horse")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password must differ by salt")
	}
	if !h.Verify("Correct1horse", first) || !h.Verify("Correct1horse", second) {
		t.Error("both digests must verify against the original password")
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	h := NewHasher(4)

	if h.Verify("anything", "not-a-bcrypt-digest") {
		t.Error("malformed digest must fail verification, not panic or pass")
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	h := NewHasher(99)
	if h.cost != DefaultCost {
		t.Errorf("out-of-range cost: got %d, want %d", h.cost, DefaultCost)
	}

	h = NewHasher(0)
	if h.cost != DefaultCost {
		t.Errorf("out-of-range cost: got %d, want %d", h.cost, DefaultCost)
	}
}

func TestValidateStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     int
	}{
		{"valid password", "Str0ngpass", 0},
		{"short with no upper", "short1", 2},
		{"all rules violated", "", 4},
		{"missing digit", "NoDigitsHere", 1},
		{"missing upper and digit", "lowercaseonly", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := ValidateStrength(tt.password)
			if len(issues) != tt.want {
				t.Errorf("got %d issues %v, want %d", len(issues), issues, tt.want)
			}
		})
	}
}

func TestValidateStrengthMessages(t *testing.T) {
	issues := ValidateStrength("short1")

	want := map[string]bool{
		"Password must be at least 8 characters long":         true,
		"Password must contain at least one uppercase letter": true,
	}
	for _, issue := range issues {
		if !want[issue] {
			t.Errorf("unexpected issue: %q", issue)
		}
	}
}
