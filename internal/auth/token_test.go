package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testUser() *User {
	return &User{ID: uuid.New(), Email: "pat@example.com", Username: "pat"}
}

func TestNewTokenIssuerRejectsEmptySecret(t *testing.T) {
	if _, err := NewTokenIssuer("", time.Minute, time.Hour); err == nil {
		t.Fatal("NewTokenIssuer(\"\") should fail")
	}
}

func TestIssueAndParse(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", 15*time.Minute, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer() error: %v", err)
	}
	u := testUser()

	pair, err := issuer.Issue(u)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" || pair.Access == pair.Refresh {
		t.Fatalf("bad token pair: %+v", pair)
	}

	id, err := issuer.ParseAccess(pair.Access)
	if err != nil {
		t.Fatalf("ParseAccess() error: %v", err)
	}
	if id != u.ID {
		t.Fatalf("ParseAccess() id = %v, want %v", id, u.ID)
	}

	id, err = issuer.ParseRefresh(pair.Refresh)
	if err != nil {
		t.Fatalf("ParseRefresh() error: %v", err)
	}
	if id != u.ID {
		t.Fatalf("ParseRefresh() id = %v, want %v", id, u.ID)
	}
}

func TestParseRejectsWrongTokenType(t *testing.T) {
	issuer, _ := NewTokenIssuer("test-secret", 15*time.Minute, 24*time.Hour)
	pair, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := issuer.ParseAccess(pair.Refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("ParseAccess(refresh token) error = %v, want ErrInvalidToken", err)
	}
	if _, err := issuer.ParseRefresh(pair.Access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("ParseRefresh(access token) error = %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	a, _ := NewTokenIssuer("secret-a", time.Minute, time.Hour)
	b, _ := NewTokenIssuer("secret-b", time.Minute, time.Hour)

	pair, err := a.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if _, err := b.ParseAccess(pair.Access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("cross-secret ParseAccess() error = %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer, _ := NewTokenIssuer("test-secret", -time.Minute, time.Hour)

	pair, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if _, err := issuer.ParseAccess(pair.Access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired ParseAccess() error = %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	issuer, _ := NewTokenIssuer("test-secret", time.Minute, time.Hour)
	if _, err := issuer.ParseAccess("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("ParseAccess(garbage) error = %v, want ErrInvalidToken", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("swordfish")
	if err != nil {
		t.Fatalf("hashPassword() error: %v", err)
	}
	if hash == "swordfish" {
		t.Fatal("password stored in the clear")
	}
	if !checkPassword(hash, "swordfish") {
		t.Fatal("correct password rejected")
	}
	if checkPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

func TestEmailLocalPart(t *testing.T) {
	tests := []struct{ in, want string }{
		{"pat@example.com", "pat"},
		{"no-at-sign", "no-at-sign"},
		{"@leading", "@leading"},
	}
	for _, tt := range tests {
		if got := emailLocalPart(tt.in); got != tt.want {
			t.Errorf("emailLocalPart(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
