package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"qrollcall/internal/store"
)

func newVerifier(t *testing.T) *Verifier {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	if err := s.InsertStudent(ctx, "101", "Ayush Singh", "AYUS123"); err != nil {
		t.Fatalf("insert student: %v", err)
	}
	if err := s.InsertAdmin(ctx, "admin1", "admin123"); err != nil {
		t.Fatalf("insert admin: %v", err)
	}
	return NewVerifier(s)
}

func TestVerifyStudent(t *testing.T) {
	v := newVerifier(t)
	ctx := context.Background()

	st, err := v.VerifyStudent(ctx, "Ayush Singh", "AYUS123")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if st.RollNo != "101" {
		t.Fatalf("expected roll 101, got %s", st.RollNo)
	}

	// Surrounding whitespace is trimmed before matching.
	if _, err := v.VerifyStudent(ctx, "  Ayush Singh \n", "\tAYUS123 "); err != nil {
		t.Fatalf("expected trimmed inputs to verify: %v", err)
	}

	// The comparison itself stays case-sensitive.
	if _, err := v.VerifyStudent(ctx, "ayush singh", "AYUS123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected case-sensitive mismatch, got %v", err)
	}

	// Unknown identity and wrong password are indistinguishable.
	_, errUnknown := v.VerifyStudent(ctx, "Nobody", "AYUS123")
	_, errWrongPw := v.VerifyStudent(ctx, "Ayush Singh", "nope")
	if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Fatalf("expected one failure outcome, got %v / %v", errUnknown, errWrongPw)
	}
}

func TestVerifyAdmin(t *testing.T) {
	v := newVerifier(t)
	ctx := context.Background()

	a, err := v.VerifyAdmin(ctx, " admin1 ", "admin123")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if a.Username != "admin1" {
		t.Fatalf("expected admin1, got %s", a.Username)
	}

	if _, err := v.VerifyAdmin(ctx, "admin1", "badpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}
