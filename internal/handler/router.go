package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"qrollcall/internal/config"
	"qrollcall/internal/export"
	"qrollcall/internal/httpmiddleware"
	"qrollcall/internal/session"
	"qrollcall/internal/store"
)

// NewRouter assembles the middleware stack and every route.
func NewRouter(cfg config.App, st *store.Store, exp *export.Exporter) *gin.Engine {
	h := New(cfg, st, exp)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())
	r.Use(session.Middleware(cfg.SessionName, cfg.SessionSecret, cfg.SessionMaxAge))

	r.LoadHTMLGlob(cfg.TemplateGlob)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", h.Healthz)

	r.GET("/", h.Home)
	r.GET("/login", h.Login)
	r.POST("/login", h.Login)
	r.GET("/admin_login", h.AdminLogin)
	r.POST("/admin_login", h.AdminLogin)
	r.GET("/logout", h.Logout)

	studentViews := r.Group("/", session.RequireStudent())
	studentViews.GET("/student", h.StudentDashboard)
	studentViews.GET("/student_qr", h.StudentQR)

	adminViews := r.Group("/", session.RequireAdmin())
	adminViews.GET("/admin_dashboard", h.AdminDashboard)
	adminViews.GET("/export", h.Export)
	adminViews.GET("/clear_attendance", h.ClearAttendance)

	r.POST("/mark_attendance", h.adminAPIAuth(), h.MarkAttendance)
	r.POST("/api/login", h.APILogin)

	return r
}

// securityHeaders sets baseline response headers on every route.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
