package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"qrollcall/internal/model"
)

// Order selects the listing direction for attendance rows.
type Order int

const (
	// NewestFirst orders by insertion descending; the dashboard view.
	NewestFirst Order = iota
	// OldestFirst orders by insertion ascending; the export snapshot.
	OldestFirst
)

// Store persists students, admins and attendance rows in a local sqlite file.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the sqlite database at dbPath and ensures
// the schema exists. Safe to call on every start.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		os.MkdirAll(dir, 0o755)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS students (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		roll_no  TEXT UNIQUE,
		name     TEXT NOT NULL,
		password TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS admins (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE,
		password TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attendance (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		roll_no TEXT,
		name    TEXT,
		date    TEXT NOT NULL,
		time    TEXT NOT NULL
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Healthy verifies database connectivity.
func (s *Store) Healthy(ctx context.Context) bool {
	return s != nil && s.db != nil && s.db.PingContext(ctx) == nil
}

// -------- Students / Admins --------

// FindStudent returns the student matching name and password exactly, or
// nil when no row matches. Wrong password and unknown name are the same
// outcome on purpose.
func (s *Store) FindStudent(ctx context.Context, name, password string) (*model.Student, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, roll_no, name, password FROM students WHERE name = ? AND password = ?`,
		name, password)
	var st model.Student
	if err := row.Scan(&st.ID, &st.RollNo, &st.Name, &st.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

// FindAdmin returns the admin matching username and password exactly, or nil.
func (s *Store) FindAdmin(ctx context.Context, username, password string) (*model.Admin, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password FROM admins WHERE username = ? AND password = ?`,
		username, password)
	var a model.Admin
	if err := row.Scan(&a.ID, &a.Username, &a.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// HasStudent reports whether a student with the roll number exists.
func (s *Store) HasStudent(ctx context.Context, rollNo string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM students WHERE roll_no = ?`, rollNo).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// HasAdmin reports whether an admin with the username exists.
func (s *Store) HasAdmin(ctx context.Context, username string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM admins WHERE username = ?`, username).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// InsertStudent adds a roster row.
func (s *Store) InsertStudent(ctx context.Context, rollNo, name, password string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO students (roll_no, name, password) VALUES (?, ?, ?)`,
		rollNo, name, password)
	return err
}

// InsertAdmin adds an admin row.
func (s *Store) InsertAdmin(ctx context.Context, username, password string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admins (username, password) VALUES (?, ?)`,
		username, password)
	return err
}

// -------- Attendance --------

// InsertAttendance appends one check-in row and returns its id. Nil rollNo
// or name persist as NULL, mirroring the lenient payload fields.
func (s *Store) InsertAttendance(ctx context.Context, rollNo, name *string, date, clock string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO attendance (roll_no, name, date, time) VALUES (?, ?, ?, ?)`,
		rollNo, name, date, clock)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAttendance returns every check-in row in the requested order.
func (s *Store) ListAttendance(ctx context.Context, order Order) ([]model.AttendanceRecord, error) {
	dir := "DESC"
	if order == OldestFirst {
		dir = "ASC"
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(roll_no, ''), COALESCE(name, ''), date, time
		 FROM attendance ORDER BY id `+dir)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		var r model.AttendanceRecord
		if err := rows.Scan(&r.ID, &r.RollNo, &r.Name, &r.Date, &r.Time); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ClearAttendance deletes every check-in row. Irreversible.
func (s *Store) ClearAttendance(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM attendance`)
	return err
}
