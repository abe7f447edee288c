package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	for i := 0; i < 2; i++ {
		s, err := New(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestFindStudent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.InsertStudent(ctx, "101", "Ayush Singh", "AYUS123"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	st, err := s.FindStudent(ctx, "Ayush Singh", "AYUS123")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if st == nil || st.RollNo != "101" {
		t.Fatalf("expected roll 101, got %+v", st)
	}

	// Wrong password and unknown name are the same nil outcome.
	if st, err := s.FindStudent(ctx, "Ayush Singh", "wrong"); err != nil || st != nil {
		t.Fatalf("expected nil,nil for wrong password, got %v, %v", st, err)
	}
	if st, err := s.FindStudent(ctx, "Nobody", "AYUS123"); err != nil || st != nil {
		t.Fatalf("expected nil,nil for unknown name, got %v, %v", st, err)
	}
}

func TestAttendanceOrderAndClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	roll1, name1 := "101", "Ayush Singh"
	roll2, name2 := "102", "Rohan Kumar"

	id1, err := s.InsertAttendance(ctx, &roll1, &name1, "2026-08-31", "09:00:00")
	if err != nil {
		t.Fatalf("insert 1: %v", err)
	}
	id2, err := s.InsertAttendance(ctx, &roll2, &name2, "2026-08-31", "09:01:00")
	if err != nil {
		t.Fatalf("insert 2: %v", err)
	}
	if id2 <= id1 {
		t.Fatalf("expected increasing ids, got %d then %d", id1, id2)
	}

	newest, err := s.ListAttendance(ctx, NewestFirst)
	if err != nil {
		t.Fatalf("list newest: %v", err)
	}
	if len(newest) != 2 || newest[0].ID != id2 || newest[1].ID != id1 {
		t.Fatalf("expected [%d %d], got %+v", id2, id1, newest)
	}

	oldest, err := s.ListAttendance(ctx, OldestFirst)
	if err != nil {
		t.Fatalf("list oldest: %v", err)
	}
	if len(oldest) != 2 || oldest[0].ID != id1 {
		t.Fatalf("expected insertion order, got %+v", oldest)
	}

	if err := s.ClearAttendance(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	empty, err := s.ListAttendance(ctx, NewestFirst)
	if err != nil {
		t.Fatalf("list after clear: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(empty))
	}
}

func TestDuplicateMarksAllowed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	roll, name := "101", "Ayush Singh"
	for i := 0; i < 2; i++ {
		if _, err := s.InsertAttendance(ctx, &roll, &name, "2026-08-31", "09:00:00"); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	records, err := s.ListAttendance(ctx, NewestFirst)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected two rows for same student and day, got %d", len(records))
	}
}

func TestNilPayloadFieldsPersistAsNull(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	name := "Ayush Singh"
	if _, err := s.InsertAttendance(ctx, nil, &name, "2026-08-31", "09:00:00"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	records, err := s.ListAttendance(ctx, NewestFirst)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].RollNo != "" || records[0].Name != name {
		t.Fatalf("expected empty roll and kept name, got %+v", records)
	}
}
