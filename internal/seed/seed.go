// Package seed populates the store with the fixed roster and admin
// credentials on startup. Seeding is idempotent: rows already present by
// roll number or username are left alone, so restarts never duplicate.
package seed

import (
	"context"
	"fmt"
	"strings"

	"qrollcall/internal/model"
	"qrollcall/internal/store"
)

// DerivePassword builds a student's login password from their name: the
// first four characters uppercased, plus "123". Names shorter than four
// characters use whatever exists; no padding.
func DerivePassword(name string) string {
	runes := []rune(name)
	if len(runes) > 4 {
		runes = runes[:4]
	}
	return strings.ToUpper(string(runes)) + "123"
}

// Run inserts missing roster students and admins.
func Run(ctx context.Context, s *store.Store, roster []model.SeedStudent, admins []model.SeedAdmin) error {
	for _, st := range roster {
		exists, err := s.HasStudent(ctx, st.RollNo)
		if err != nil {
			return fmt.Errorf("seed student %s: %w", st.RollNo, err)
		}
		if exists {
			continue
		}
		if err := s.InsertStudent(ctx, st.RollNo, st.Name, DerivePassword(st.Name)); err != nil {
			return fmt.Errorf("seed student %s: %w", st.RollNo, err)
		}
	}

	for _, a := range admins {
		exists, err := s.HasAdmin(ctx, a.Username)
		if err != nil {
			return fmt.Errorf("seed admin %s: %w", a.Username, err)
		}
		if exists {
			continue
		}
		if err := s.InsertAdmin(ctx, a.Username, a.Password); err != nil {
			return fmt.Errorf("seed admin %s: %w", a.Username, err)
		}
	}
	return nil
}
