package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts counts credential checks by kind (student/admin) and
	// outcome (ok/failed).
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qrollcall_login_attempts_total",
		Help: "Login attempts by kind and outcome.",
	}, []string{"kind", "outcome"})

	// AttendanceMarked counts successful check-in inserts.
	AttendanceMarked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qrollcall_attendance_marked_total",
		Help: "Attendance rows inserted.",
	})

	// ExportsGenerated counts spreadsheet refreshes.
	ExportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qrollcall_exports_generated_total",
		Help: "Spreadsheet exports written.",
	})
)
