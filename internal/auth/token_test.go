package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/student-portal/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", 30)
	want := domain.Identity{SubjectID: 42, Role: domain.RoleStudent}

	token, expiresAt, err := codec.Issue(want)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}

	got, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != want {
		t.Fatalf("identity = %+v, want %+v", got, want)
	}
}

func TestTokenExpired(t *testing.T) {
	codec := NewTokenCodec("test-secret", 30)
	token, _, err := codec.IssueFor(domain.Identity{SubjectID: 7, Role: domain.RoleTeacher}, -time.Minute)
	if err != nil {
		t.Fatalf("IssueFor: %v", err)
	}

	if _, err := codec.Verify(token); !errors.Is(err, ErrExpired) {
		t.Fatalf("err = %v, want ErrExpired", err)
	}
}

func TestTokenTamperedSignature(t *testing.T) {
	codec := NewTokenCodec("test-secret", 30)
	token, _, err := codec.Issue(domain.Identity{SubjectID: 9, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip a character in the signature segment.
	idx := strings.LastIndex(token, ".") + 1
	sig := []byte(token[idx:])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := token[:idx] + string(sig)

	if _, err := codec.Verify(tampered); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("err = %v, want ErrInvalidSignature", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenCodec("secret-a", 30)
	verifier := NewTokenCodec("secret-b", 30)

	token, _, err := issuer.Issue(domain.Identity{SubjectID: 3, Role: domain.RoleStudent})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("err = %v, want ErrInvalidSignature", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	codec := NewTokenCodec("test-secret", 30)

	for _, tokenStr := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		if _, err := codec.Verify(tokenStr); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Verify(%q) err = %v, want ErrMalformed", tokenStr, err)
		}
	}
}

func TestTokenRejectsInvalidClaims(t *testing.T) {
	codec := NewTokenCodec("test-secret", 30)

	// Missing subject.
	token, _, err := codec.Issue(domain.Identity{SubjectID: 0, Role: domain.RoleStudent})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := codec.Verify(token); !errors.Is(err, ErrMalformed) {
		t.Fatalf("missing subject: err = %v, want ErrMalformed", err)
	}

	// Unknown role.
	token, _, err = codec.Issue(domain.Identity{SubjectID: 5, Role: domain.Role("superuser")})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := codec.Verify(token); !errors.Is(err, ErrMalformed) {
		t.Fatalf("unknown role: err = %v, want ErrMalformed", err)
	}
}
