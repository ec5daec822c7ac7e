package auth

import (
	"testing"

	"github.com/spec-kit/student-portal/internal/domain"
)

func TestAuthorize(t *testing.T) {
	gate := NewAccessGate(NewTokenCodec("test-secret", 30))

	cases := []struct {
		name    string
		role    domain.Role
		allowed []domain.Role
		wantErr bool
	}{
		{"empty set allows any role", domain.RoleStudent, nil, false},
		{"role in set", domain.RoleTeacher, []domain.Role{domain.RoleTeacher, domain.RoleAdmin}, false},
		{"role not in set", domain.RoleStudent, []domain.Role{domain.RoleTeacher}, true},
		{"admin not implicit", domain.RoleAdmin, []domain.Role{domain.RoleStudent}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			identity := domain.Identity{SubjectID: 1, Role: tc.role}
			err := gate.Authorize(identity, tc.allowed...)
			if tc.wantErr && err == nil {
				t.Fatalf("expected forbidden, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthenticateTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", 30)
	gate := NewAccessGate(codec)

	want := domain.Identity{SubjectID: 11, Role: domain.RoleStudent}
	token, _, err := codec.Issue(want)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := gate.AuthenticateToken(token)
	if err != nil {
		t.Fatalf("AuthenticateToken: %v", err)
	}
	if got != want {
		t.Fatalf("identity = %+v, want %+v", got, want)
	}

	if _, err := gate.AuthenticateToken("garbage"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}
