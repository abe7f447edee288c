// Package session holds the authenticated identity for a browser session.
// A session carries at most one student snapshot and one admin snapshot,
// under separate keys; each guard checks only its own kind. Snapshots are
// copies taken at login time and never re-read from the store.
package session

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const (
	studentKey = "student"
	adminKey   = "admin"
)

// StudentSnapshot is the identity stored for a logged-in student.
type StudentSnapshot struct {
	ID     int64
	RollNo string
	Name   string
}

// AdminSnapshot is the identity stored for a logged-in admin.
type AdminSnapshot struct {
	ID       int64
	Username string
}

func init() {
	gob.Register(StudentSnapshot{})
	gob.Register(AdminSnapshot{})
}

// Middleware installs the cookie-backed session store.
func Middleware(name, secret string, maxAge int) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(name, store)
}

// EstablishStudent stores a student snapshot in the current session.
func EstablishStudent(c *gin.Context, snap StudentSnapshot) error {
	s := sessions.Default(c)
	s.Set(studentKey, snap)
	return s.Save()
}

// EstablishAdmin stores an admin snapshot in the current session.
func EstablishAdmin(c *gin.Context, snap AdminSnapshot) error {
	s := sessions.Default(c)
	s.Set(adminKey, snap)
	return s.Save()
}

// CurrentStudent returns the student snapshot, if one is authenticated.
func CurrentStudent(c *gin.Context) (StudentSnapshot, bool) {
	snap, ok := sessions.Default(c).Get(studentKey).(StudentSnapshot)
	return snap, ok
}

// CurrentAdmin returns the admin snapshot, if one is authenticated.
func CurrentAdmin(c *gin.Context) (AdminSnapshot, bool) {
	snap, ok := sessions.Default(c).Get(adminKey).(AdminSnapshot)
	return snap, ok
}

// Clear destroys all session state (logout).
func Clear(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	return s.Save()
}

// RequireStudent redirects to the student login page when no student is
// authenticated. Protected views never return data to anonymous requests.
func RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentStudent(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin redirects to the admin login page when no admin is
// authenticated.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentAdmin(c); !ok {
			c.Redirect(http.StatusFound, "/admin_login")
			c.Abort()
			return
		}
		c.Next()
	}
}
