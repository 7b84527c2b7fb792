package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "transport/internal/config"
	h "transport/internal/http/handlers"
	"transport/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
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

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		// Catalog (public)
		api.GET("/routes", h.GetRoutes)
		schedules := api.Group("/schedules")
		schedules.GET("/search", h.SearchSchedules)
		schedules.GET("/:id", h.GetScheduleDetail)
		api.GET("/buses/:id/seats", h.GetAvailableSeats)

		// Bookings (authenticated)
		bookings := api.Group("/bookings")
		bookings.Use(middleware.Authenticate())
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.GetMyBookings)
		bookings.GET("/:id", h.GetBookingDetail)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.GET("/:id/ticket", h.GetBookingTicketPDF)

		// Admin
		admin := api.Group("/admin")
		admin.Use(middleware.Authenticate(), middleware.RequireRoles("admin"))
		admin.GET("/stats", h.GetDashboardStats)

		admin.POST("/routes", h.CreateRoute)
		admin.PUT("/routes/:id", h.UpdateRoute)
		admin.DELETE("/routes/:id", h.DeleteRoute)

		admin.GET("/schedules", h.GetSchedules)
		admin.POST("/schedules", h.CreateSchedule)
		admin.PUT("/schedules/:id/status", h.UpdateScheduleStatus)
		admin.DELETE("/schedules/:id", h.DeleteSchedule)

		admin.GET("/buses", h.GetBuses)
		admin.GET("/buses/:id", h.GetBus)
		admin.POST("/buses", h.RegisterBus)
		admin.PUT("/buses/:id", h.UpdateBus)
		admin.DELETE("/buses/:id", h.DeleteBus)

		admin.GET("/drivers", h.GetDrivers)
		admin.POST("/drivers", h.CreateDriver)
		admin.PUT("/drivers/:id", h.UpdateDriver)
		admin.DELETE("/drivers/:id", h.DeleteDriver)
	}

	return r
}
