package api

import (
	"log"
	stdhttp "net/http"

	intconfig "backoffice/internal/config"
	"backoffice/internal/http/handlers"
	"backoffice/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, h handlers.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins), middleware.NoStore())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })
	r.NoRoute(handlers.NotFound)

	r.GET("/", handlers.Root)

	write := middleware.RequireOperator(h.Services.Auth, env.AuthEnabled())

	v1 := r.Group("/v1")
	{
		v1.GET("/health", handlers.Health)
		v1.GET("/db-check", h.DBCheck)
		v1.POST("/auth/token", h.IssueToken)

		bookings := v1.Group("/user-booking")
		bookings.POST("", write, h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:bookingReference", h.GetBooking)
		bookings.GET("/:bookingReference/voucher", h.BookingVoucher)

		customers := v1.Group("/customers")
		customers.POST("", write, h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)

		trips := v1.Group("/trips")
		trips.POST("", write, h.CreateTrip)
		trips.GET("", h.ListTrips)
		trips.GET("/:id", h.GetTrip)

		travellers := v1.Group("/travellers")
		travellers.POST("", write, h.CreateTraveller)
		travellers.GET("", h.ListTravellers)
		travellers.GET("/:id", h.GetTraveller)
	}

	return r
}
