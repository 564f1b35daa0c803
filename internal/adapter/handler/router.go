package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"go.uber.org/zap"
)

type RouterConfig struct {
	JWTSecret       string
	RateLimitPerMin int
	AllowedOrigins  []string
}

type Handlers struct {
	Booking *BookingHandler
	Owner   *OwnerHandler
	Public  *PublicHandler
	Review  *ReviewHandler
	Admin   *AdminHandler
}

func NewRouter(cfg RouterConfig, h Handlers, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(log), RequestLogger(log), RateLimit(cfg.RateLimitPerMin, log))
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	public := api.Group("/public")
	{
		public.GET("/court-complexes", h.Public.ListComplexes)
		public.GET("/court-complexes/:id", h.Public.GetComplex)
		public.GET("/court-complexes/:id/reviews", h.Public.ComplexReviews)
		public.GET("/court-complexes/:id/availability-grid", h.Public.AvailabilityGrid)
		public.GET("/courts/:id", h.Public.GetCourt)
		public.GET("/courts/:id/availability", h.Public.CourtAvailability)
		public.GET("/banks", h.Public.Banks)
	}

	auth := api.Group("", Authenticate(cfg.JWTSecret))

	booking := auth.Group("/booking")
	{
		booking.POST("/check-availability", h.Booking.CheckAvailability)

		customer := booking.Group("", RequireRole(domain.RoleCustomer))
		customer.POST("", h.Booking.CreateBooking)
		customer.GET("/my-bookings", h.Booking.MyBookings)
		customer.GET("/:id", h.Booking.GetBooking)
		customer.GET("/:id/payment-info", h.Booking.PaymentInfo)
		customer.PUT("/:id/cancel", h.Booking.CancelBooking)
	}

	owner := auth.Group("/owner", RequireRole(domain.RoleOwner))
	{
		owner.GET("/statistics", h.Owner.Statistics)

		owner.GET("/court-complexes", h.Owner.ListComplexes)
		owner.POST("/court-complexes", h.Owner.CreateComplex)
		owner.GET("/court-complexes/:id", h.Owner.GetComplex)
		owner.PUT("/court-complexes/:id", h.Owner.UpdateComplex)
		owner.POST("/court-complexes/:id/courts", h.Owner.CreateCourt)
		owner.GET("/court-complexes/:id/calendar", h.Owner.Calendar)
		owner.PUT("/courts/:id", h.Owner.UpdateCourt)
		owner.DELETE("/courts/:id", h.Owner.DeleteCourt)

		owner.GET("/bookings", h.Owner.Bookings)
		owner.POST("/bookings/walk-in", h.Owner.CreateWalkIn)
		owner.GET("/bookings/pending", h.Owner.PendingBookings)
		owner.PUT("/bookings/:id/approve", h.Owner.Approve)
		owner.PUT("/bookings/:id/reject", h.Owner.Reject)
		owner.PUT("/bookings/:id/cancel", h.Owner.Cancel)
		owner.PUT("/bookings/:id/complete", h.Owner.Complete)
	}

	reviews := auth.Group("/reviews")
	{
		reviews.DELETE("/:id", RequireRole(domain.RoleCustomer, domain.RoleAdmin), h.Review.Delete)

		customer := reviews.Group("", RequireRole(domain.RoleCustomer))
		customer.POST("", h.Review.Create)
		customer.GET("/mine", h.Review.Mine)
		customer.PUT("/:id", h.Review.Update)
	}

	admin := auth.Group("/admin", RequireRole(domain.RoleAdmin))
	{
		admin.GET("/statistics", h.Admin.Statistics)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
