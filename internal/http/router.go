package api

import (
	"log"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"priestconnect-api/internal/config"
	"priestconnect-api/internal/domain/models"
	h "priestconnect-api/internal/http/handlers"
	"priestconnect-api/internal/http/middleware"
)

func NewRouter(env config.Env, handlers h.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	secret := []byte(env.JWTSecret)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", h.Health)
		apiGroup.GET("/db-check", h.DBCheck)

		// Auth (rate limited per IP)
		rl := middleware.NewRateLimiter(5, 10)
		auth := apiGroup.Group("/auth", middleware.RateLimit(rl))
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)

		// Everything below requires a session
		authed := apiGroup.Group("", middleware.Auth(secret))
		authed.GET("/me", handlers.Me)

		// Priest search (institution read access only)
		authed.GET("/priests", middleware.RequireRoles(models.RoleInstitution), handlers.SearchPriests)

		// Profiles (own profile only, per role)
		profiles := authed.Group("/profiles")
		profiles.GET("/priest", middleware.RequireRoles(models.RolePriest), handlers.GetPriestProfile)
		profiles.PUT("/priest", middleware.RequireRoles(models.RolePriest), handlers.PutPriestProfile)
		profiles.GET("/institution", middleware.RequireRoles(models.RoleInstitution), handlers.GetInstitutionProfile)
		profiles.PUT("/institution", middleware.RequireRoles(models.RoleInstitution), handlers.PutInstitutionProfile)

		// Availability calendars
		authed.GET("/availability", handlers.GetAvailability)
		authed.PUT("/availability", middleware.RequireRoles(models.RolePriest), handlers.PutAvailability)

		// Bookings
		bookings := authed.Group("/bookings")
		bookings.GET("", handlers.ListBookings)
		bookings.POST("", middleware.RequireRoles(models.RoleInstitution), handlers.CreateBooking)
		bookings.GET("/stream", handlers.StreamBookings)
		bookings.GET("/:id", handlers.GetBooking)
		bookings.POST("/:id/respond", middleware.RequireRoles(models.RolePriest), handlers.RespondToBooking)
		bookings.POST("/:id/complete", handlers.CompleteBooking)
		bookings.GET("/:id/confirmation", handlers.BookingConfirmation)

		// Dashboard
		authed.GET("/dashboard/stats", handlers.DashboardStats)
	}

	return r
}
