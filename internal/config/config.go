package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"qrollcall/internal/model"
)

// App holds the runtime configuration loaded from environment variables.
// The seed roster and admin list ride along so startup never reads ambient
// globals; callers may replace them before seeding.
type App struct {
	Env             string
	HTTPPort        string
	DBPath          string
	ExportPath      string
	TemplateGlob    string
	SessionName     string
	SessionSecret   string
	SessionMaxAge   int
	JWTIssuer       string
	JWTSigningKey   string
	AccessTTL       time.Duration
	RateLimitPerMin int

	Roster []model.SeedStudent
	Admins []model.SeedAdmin
}

// Load returns application config populated from environment variables with sensible defaults.
func Load() App {
	return App{
		Env:             getEnv("APP_ENV", "dev"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "./attendance.db"),
		ExportPath:      getEnv("EXPORT_PATH", "./attendance.xlsx"),
		TemplateGlob:    getEnv("TEMPLATE_GLOB", "web/templates/*.html"),
		SessionName:     getEnv("SESSION_NAME", "qrollcall_session"),
		SessionSecret:   getEnv("SESSION_SECRET", "dev-session-secret-change"),
		SessionMaxAge:   intEnv("SESSION_MAX_AGE", 86400*7),
		JWTIssuer:       getEnv("JWT_ISSUER", "qrollcall"),
		JWTSigningKey:   getEnv("JWT_SIGNING_KEY", "dev-signing-secret-change"),
		AccessTTL:       durationEnv("ACCESS_TTL", 12*time.Hour),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 120),
		Roster:          DefaultRoster(),
		Admins:          DefaultAdmins(),
	}
}

// DefaultRoster is the built-in class list; login passwords are derived from
// the names at seed time.
func DefaultRoster() []model.SeedStudent {
	return []model.SeedStudent{
		{RollNo: "101", Name: "Ayush Singh"},
		{RollNo: "102", Name: "Rohan Kumar"},
		{RollNo: "103", Name: "Priya Sharma"},
		{RollNo: "104", Name: "Ankit Verma"},
		{RollNo: "105", Name: "Neha Gupta"},
		{RollNo: "106", Name: "Vikas Yadav"},
		{RollNo: "107", Name: "Simran Kaur"},
		{RollNo: "108", Name: "Rahul Sharma"},
		{RollNo: "109", Name: "Sneha Patel"},
		{RollNo: "110", Name: "Arjun Mehta"},
	}
}

// DefaultAdmins returns the built-in admin credentials.
func DefaultAdmins() []model.SeedAdmin {
	return []model.SeedAdmin{
		{Username: "admin1", Password: "admin123"},
		{Username: "admin2", Password: "admin456"},
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
