package server

import (
	"context"
	"net/http"
	"time"

	"github.com/NazarovEvgn/lets-app/internal/auth"
	"github.com/NazarovEvgn/lets-app/internal/availability"
	"github.com/NazarovEvgn/lets-app/internal/booking"
	"github.com/NazarovEvgn/lets-app/internal/business"
	"github.com/NazarovEvgn/lets-app/internal/catalog"
	"github.com/NazarovEvgn/lets-app/internal/config"
	"github.com/NazarovEvgn/lets-app/internal/employee"
	"github.com/NazarovEvgn/lets-app/internal/favorite"
	"github.com/NazarovEvgn/lets-app/internal/otp"
	"github.com/NazarovEvgn/lets-app/internal/photo"
	"github.com/NazarovEvgn/lets-app/internal/promotion"
	"github.com/NazarovEvgn/lets-app/internal/upload"
	"github.com/NazarovEvgn/lets-app/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, otpStore *otp.Store) *Server {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(),
	)

	businessRepo := business.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	promotionRepo := promotion.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	userRepo := user.NewRepository(db)

	clock := availability.SystemClock()
	resolver := availability.NewResolver(catalogRepo, businessRepo, bookingRepo, clock)

	businessService := business.NewService(businessRepo, catalogRepo, promotionRepo, cfg.JWTSecret)
	bookingService := booking.NewService(bookingRepo, catalogRepo, clock)
	userService := user.NewService(userRepo, cfg.JWTSecret)

	businessHandler := business.NewHandler(businessService)
	catalogHandler := catalog.NewHandler(db)
	employeeHandler := employee.NewHandler(db)
	promotionHandler := promotion.NewHandler(db)
	bookingHandler := booking.NewHandler(bookingService)
	favoriteHandler := favorite.NewHandler(db)
	photoHandler := photo.NewHandler(db)
	userHandler := user.NewHandler(userService)
	otpHandler := otp.NewHandler(otpStore, userService)
	availabilityHandler := availability.NewHandler(resolver)
	uploadHandler := upload.NewHandler(cfg.UploadDir)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.Static("/uploads", cfg.UploadDir)

	authGroup := router.Group("/auth")
	authGroup.Use(RateLimitMiddleware(5, 10))
	{
		authGroup.POST("/register/client", userHandler.Register)
		authGroup.POST("/login/client", userHandler.Login)
		authGroup.POST("/register/business", businessHandler.RegisterAdmin)
		authGroup.POST("/login/business", businessHandler.LoginAdmin)
		authGroup.POST("/refresh", userHandler.RefreshToken)
		authGroup.POST("/otp/request", otpHandler.RequestCode)
		authGroup.POST("/otp/verify", otpHandler.VerifyCode)
	}

	public := router.Group("/businesses")
	{
		public.GET("", businessHandler.ListBusinesses)
		public.GET("/nearby", businessHandler.ListNearby)
		public.GET("/:businessID", businessHandler.GetBusiness)
		public.GET("/:businessID/status", businessHandler.GetBusinessStatus)
		public.GET("/:businessID/services", catalogHandler.ListBusinessServices)
		public.GET("/:businessID/employees", employeeHandler.ListBusinessEmployees)
		public.GET("/:businessID/promotions", promotionHandler.ListBusinessPromotions)
		public.GET("/:businessID/available-slots", availabilityHandler.GetAvailableSlots)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.POST("/bookings", bookingHandler.CreateBooking)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.CancelBooking)
		protected.GET("/favorites", favoriteHandler.ListFavorites)
		protected.POST("/favorites/:businessID", favoriteHandler.AddFavorite)
		protected.DELETE("/favorites/:businessID", favoriteHandler.RemoveFavorite)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleBusinessAdmin))
	{
		admin.GET("/profile", businessHandler.GetProfile)
		admin.PATCH("/profile", businessHandler.UpdateProfile)
		admin.GET("/status", businessHandler.GetCurrentStatus)
		admin.PATCH("/status", businessHandler.UpdateStatus)
		admin.GET("/status/history", businessHandler.GetStatusHistory)
		admin.GET("/hours", businessHandler.GetHours)
		admin.PUT("/hours", businessHandler.UpdateHours)

		admin.GET("/services", catalogHandler.ListMyServices)
		admin.POST("/services", catalogHandler.CreateService)
		admin.PATCH("/services/:serviceID", catalogHandler.UpdateService)
		admin.DELETE("/services/:serviceID", catalogHandler.DeleteService)

		admin.GET("/employees", employeeHandler.ListMyEmployees)
		admin.POST("/employees", employeeHandler.CreateEmployee)
		admin.PATCH("/employees/:employeeID", employeeHandler.UpdateEmployee)
		admin.DELETE("/employees/:employeeID", employeeHandler.DeleteEmployee)

		admin.GET("/promotions", promotionHandler.ListMyPromotions)
		admin.POST("/promotions", promotionHandler.CreatePromotion)
		admin.PATCH("/promotions/:promotionID", promotionHandler.UpdatePromotion)
		admin.DELETE("/promotions/:promotionID", promotionHandler.DeletePromotion)

		admin.GET("/bookings", bookingHandler.ListBookings)
		admin.POST("/bookings", bookingHandler.CreateWalkIn)
		admin.PATCH("/bookings/:bookingID", bookingHandler.UpdateBookingStatus)
		admin.GET("/bookings/by-employee", bookingHandler.ListBookingsByEmployee)
		admin.GET("/bookings/export", bookingHandler.ExportBookings)
		admin.GET("/analytics", bookingHandler.GetAnalytics)

		admin.GET("/photos", photoHandler.ListPhotos)
		admin.POST("/photos", photoHandler.CreatePhoto)
		admin.PATCH("/photos/:photoID", photoHandler.UpdatePhoto)
		admin.PATCH("/photos/:photoID/set-main", photoHandler.SetMainPhoto)
		admin.DELETE("/photos/:photoID", photoHandler.DeletePhoto)

		admin.POST("/upload", uploadHandler.UploadImage)
	}

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests before the process exits.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
