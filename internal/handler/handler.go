package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"qrollcall/internal/auth"
	"qrollcall/internal/config"
	"qrollcall/internal/export"
	"qrollcall/internal/metrics"
	"qrollcall/internal/qr"
	"qrollcall/internal/session"
	"qrollcall/internal/store"
)

// Timestamp formats for attendance rows. Captured from the server's local
// clock, not UTC-normalized; exports from servers in different timezones
// are not comparable.
const (
	dateFormat = "2006-01-02"
	timeFormat = "15:04:05"
)

// Handler carries the dependencies for every route.
type Handler struct {
	cfg      config.App
	store    *store.Store
	verifier *auth.Verifier
	exporter *export.Exporter
}

// New creates a handler.
func New(cfg config.App, st *store.Store, exp *export.Exporter) *Handler {
	return &Handler{
		cfg:      cfg,
		store:    st,
		verifier: auth.NewVerifier(st),
		exporter: exp,
	}
}

// ---------- Public pages ----------

func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// Login serves the student login form and processes submissions.
func (h *Handler) Login(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.HTML(http.StatusOK, "login.html", gin.H{})
		return
	}

	name := c.PostForm("name")
	password := c.PostForm("password")

	student, err := h.verifier.VerifyStudent(c.Request.Context(), name, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.LoginAttempts.WithLabelValues("student", "failed").Inc()
			c.HTML(http.StatusOK, "login.html", gin.H{"error": "Invalid student credentials!"})
			return
		}
		h.fail(c, "student login", err)
		return
	}

	snap := session.StudentSnapshot{ID: student.ID, RollNo: student.RollNo, Name: student.Name}
	if err := session.EstablishStudent(c, snap); err != nil {
		h.fail(c, "establish student session", err)
		return
	}
	metrics.LoginAttempts.WithLabelValues("student", "ok").Inc()
	c.Redirect(http.StatusFound, "/student")
}

// AdminLogin serves the admin login form and processes submissions.
func (h *Handler) AdminLogin(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.HTML(http.StatusOK, "admin_login.html", gin.H{})
		return
	}

	username := c.PostForm("username")
	password := c.PostForm("password")

	admin, err := h.verifier.VerifyAdmin(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.LoginAttempts.WithLabelValues("admin", "failed").Inc()
			c.HTML(http.StatusOK, "admin_login.html", gin.H{"error": "Invalid admin credentials!"})
			return
		}
		h.fail(c, "admin login", err)
		return
	}

	snap := session.AdminSnapshot{ID: admin.ID, Username: admin.Username}
	if err := session.EstablishAdmin(c, snap); err != nil {
		h.fail(c, "establish admin session", err)
		return
	}
	metrics.LoginAttempts.WithLabelValues("admin", "ok").Inc()
	c.Redirect(http.StatusFound, "/admin_dashboard")
}

// Logout clears all session state and returns home.
func (h *Handler) Logout(c *gin.Context) {
	if err := session.Clear(c); err != nil {
		log.Printf("logout: clear session: %v", err)
	}
	c.Redirect(http.StatusFound, "/")
}

// ---------- Student views ----------

func (h *Handler) StudentDashboard(c *gin.Context) {
	snap, _ := session.CurrentStudent(c)
	c.HTML(http.StatusOK, "student.html", gin.H{"student": snap})
}

// StudentQR renders the logged-in student's check-in code as inline PNG.
func (h *Handler) StudentQR(c *gin.Context) {
	snap, _ := session.CurrentStudent(c)
	png, err := qr.Image(snap.RollNo, snap.Name)
	if err != nil {
		h.fail(c, "render qr", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ---------- Admin views ----------

func (h *Handler) AdminDashboard(c *gin.Context) {
	records, err := h.store.ListAttendance(c.Request.Context(), store.NewestFirst)
	if err != nil {
		h.fail(c, "list attendance", err)
		return
	}
	snap, _ := session.CurrentAdmin(c)
	c.HTML(http.StatusOK, "admin.html", gin.H{"admin": snap, "records": records})
}

// MarkAttendance decodes a scanned payload and appends one check-in row.
// The same student may be marked any number of times per day; rows are
// never deduplicated.
func (h *Handler) MarkAttendance(c *gin.Context) {
	qrData := h.checkinPayload(c)

	payload, err := qr.Decode(qrData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid qr data"})
		return
	}

	now := time.Now()
	id, err := h.store.InsertAttendance(c.Request.Context(), payload.RollNo, payload.Name,
		now.Format(dateFormat), now.Format(timeFormat))
	if err != nil {
		log.Printf("mark attendance: insert: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "storage unavailable"})
		return
	}
	metrics.AttendanceMarked.Inc()

	if err := h.exporter.Refresh(c.Request.Context()); err != nil {
		log.Printf("mark attendance: refresh export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "export refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "attendance marked",
		"id":      id,
		"roll_no": payload.RollNo,
		"name":    payload.Name,
	})
}

// checkinPayload pulls qr_data from a JSON body or a form field.
func (h *Handler) checkinPayload(c *gin.Context) string {
	if c.ContentType() == "application/json" {
		var body struct {
			QRData string `json:"qr_data"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			return body.QRData
		}
		return ""
	}
	return c.PostForm("qr_data")
}

// Export regenerates the spreadsheet and sends it as a download.
func (h *Handler) Export(c *gin.Context) {
	if err := h.exporter.Refresh(c.Request.Context()); err != nil {
		h.fail(c, "export", err)
		return
	}
	c.FileAttachment(h.exporter.Path(), "attendance.xlsx")
}

// ClearAttendance empties the table, rewrites a header-only export and
// returns to the dashboard.
func (h *Handler) ClearAttendance(c *gin.Context) {
	if err := h.exporter.ClearAndReexport(c.Request.Context()); err != nil {
		h.fail(c, "clear attendance", err)
		return
	}
	c.Redirect(http.StatusFound, "/admin_dashboard")
}

// ---------- Scanner API ----------

// APILogin authenticates a scanner client with admin credentials and
// returns a bearer token for /mark_attendance.
func (h *Handler) APILogin(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.verifier.VerifyAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.LoginAttempts.WithLabelValues("admin", "failed").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.fail(c, "api login", err)
		return
	}

	token, exp, err := auth.Issue(admin.Username, auth.RoleAdmin, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.AccessTTL)
	if err != nil {
		h.fail(c, "issue token", err)
		return
	}
	metrics.LoginAttempts.WithLabelValues("admin", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   exp.Unix(),
	})
}

// adminAPIAuth admits an admin cookie session or a valid admin bearer
// token; everything else gets a JSON 401, never a redirect.
func (h *Handler) adminAPIAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := session.CurrentAdmin(c); ok {
			c.Next()
			return
		}
		claims, ok := auth.FromBearer(c.GetHeader("Authorization"), h.cfg.JWTSigningKey, h.cfg.JWTIssuer)
		if ok && claims.Role == auth.RoleAdmin {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "not authorized"})
	}
}

// ---------- Health ----------

func (h *Handler) Healthz(c *gin.Context) {
	dbHealthy := h.store.Healthy(c.Request.Context())
	status := http.StatusOK
	if !dbHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": "ok", "db": dbHealthy})
}

// fail surfaces a storage or rendering failure as a 500 for this request.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	log.Printf("%s: %v", op, err)
	c.String(http.StatusInternalServerError, "internal error")
	c.Abort()
}
