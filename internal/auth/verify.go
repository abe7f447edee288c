package auth

import (
	"context"
	"errors"
	"strings"

	"qrollcall/internal/model"
	"qrollcall/internal/store"
)

// ErrInvalidCredentials is the single failure outcome for both unknown
// identities and wrong passwords; callers must not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Verifier checks submitted credentials against the store.
type Verifier struct {
	store *store.Store
}

// NewVerifier creates a verifier backed by the store.
func NewVerifier(s *store.Store) *Verifier {
	return &Verifier{store: s}
}

// VerifyStudent matches a (name, password) pair. Inputs are trimmed of
// surrounding whitespace; the comparison itself is exact and case-sensitive.
func (v *Verifier) VerifyStudent(ctx context.Context, name, password string) (*model.Student, error) {
	st, err := v.store.FindStudent(ctx, strings.TrimSpace(name), strings.TrimSpace(password))
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrInvalidCredentials
	}
	return st, nil
}

// VerifyAdmin matches a (username, password) pair under the same contract.
func (v *Verifier) VerifyAdmin(ctx context.Context, username, password string) (*model.Admin, error) {
	a, err := v.store.FindAdmin(ctx, strings.TrimSpace(username), strings.TrimSpace(password))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}
