package model

// Student is a seeded roster member who can log in and present a QR code.
type Student struct {
	ID       int64  `json:"id"`
	RollNo   string `json:"roll_no"`
	Name     string `json:"name"`
	Password string `json:"-"`
}

// Admin is a seeded operator who marks attendance and manages exports.
type Admin struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// AttendanceRecord is one check-in row. RollNo and Name are denormalized
// copies taken from the scanned payload, not joined from the students table,
// and may be empty when the payload omitted them.
type AttendanceRecord struct {
	ID     int64  `json:"id"`
	RollNo string `json:"roll_no"`
	Name   string `json:"name"`
	Date   string `json:"date"` // YYYY-MM-DD, server-local
	Time   string `json:"time"` // HH:MM:SS, server-local
}

// SeedStudent is a roster entry; the login password is derived from Name.
type SeedStudent struct {
	RollNo string
	Name   string
}

// SeedAdmin is a preconfigured admin credential pair.
type SeedAdmin struct {
	Username string
	Password string
}
