// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("tamarind-and-lime")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	ok, rehash, err := VerifyPassword("tamarind-and-lime", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}
	if rehash != "" {
		t.Errorf("current params must not trigger rehash")
	}

	ok, _, err = VerifyPassword("wrong", hash)
	if err != nil || ok {
		t.Errorf("expected mismatch, got ok=%v err=%v", ok, err)
	}
}

func TestVerifyPasswordRehashesOldParams(t *testing.T) {
	old := currentParams
	currentParams.time = 2
	hash, err := HashPassword("pad-see-ew")
	currentParams = old
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, rehash, err := VerifyPassword("pad-see-ew", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}
	if rehash == "" || !strings.Contains(rehash, "t=1,") {
		t.Errorf("expected upgraded hash, got %q", rehash)
	}
}

func TestVerifyPasswordMalformed(t *testing.T) {
	if _, _, err := VerifyPassword("x", "$bcrypt$nope"); err == nil {
		t.Error("expected malformed hash error")
	}
}

func TestVerifyPasswordTimingSafeUnknownAccount(t *testing.T) {
	ok, _, err := VerifyPasswordTimingSafe("anything", nil)
	if err != nil || ok {
		t.Errorf("missing account must not match: ok=%v err=%v", ok, err)
	}
}

func TestTokenHashing(t *testing.T) {
	token, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	other, _ := GenerateSecureToken(32)
	if token == other {
		t.Fatal("tokens must be random")
	}

	h := HashToken(token)
	if !CompareTokenHash(token, h) {
		t.Error("token must match its own hash")
	}
	if CompareTokenHash(other, h) {
		t.Error("different token must not match")
	}
}
