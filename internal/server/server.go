package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kelechieze/rentwheels/config"
	"github.com/kelechieze/rentwheels/internal/handlers"
	"github.com/kelechieze/rentwheels/internal/middleware"
	"github.com/kelechieze/rentwheels/internal/models"
	"github.com/kelechieze/rentwheels/internal/paystack"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	paystackCfg, err := config.LoadPaystackConfig()
	if err != nil {
		return fmt.Errorf("failed to load paystack config: %v", err)
	}
	gateway := paystack.NewClient(paystackCfg.SecretKey, paystackCfg.BaseURL, paystackCfg.CallbackURL)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	setupRoutes(r, db, gateway)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, gateway paystack.Gateway) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.PaystackMiddleware(gateway))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		carPublic := public.Group("/cars")
		{
			carPublic.GET("", handlers.ListCars)
			carPublic.GET("/:id", handlers.GetCar)
			carPublic.GET("/:id/reviews", handlers.ListCarReviews)
		}

		paymentPublic := public.Group("/payments")
		{
			paymentPublic.POST("/initialize", handlers.InitializePayment)
			paymentPublic.GET("/verify/:reference", handlers.VerifyPayment)
			paymentPublic.GET("/callback", handlers.PaymentCallback)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/profile", handlers.GetProfile)
		protected.PUT("/profile", handlers.UpdateProfile)

		bookings := protected.Group("/bookings")
		{
			bookings.POST("", handlers.CreateBooking)
			bookings.GET("", handlers.ListMyBookings)
			bookings.GET("/:id", handlers.GetBooking)
			bookings.POST("/:id/cancel", handlers.CancelBooking)
			bookings.POST("/:id/pay", handlers.RetryBookingPayment)
			bookings.GET("/:id/voucher", handlers.GetBookingVoucher)
			bookings.GET("/:id/receipt", handlers.GetBookingReceipt)
		}

		wallet := protected.Group("/wallet")
		{
			wallet.GET("", handlers.GetWallet)
			wallet.GET("/transactions", handlers.ListWalletTransactions)
			wallet.POST("/fund", handlers.FundWallet)
		}

		rewards := protected.Group("/rewards")
		{
			rewards.GET("", handlers.ListRewardTransactions)
			rewards.POST("/redeem", handlers.RedeemPoints)
		}

		protected.POST("/discounts/validate", handlers.ValidateDiscount)
		protected.POST("/reviews", handlers.CreateReview)

		vendor := protected.Group("/vendor")
		vendor.Use(middleware.RequireRole(models.RoleVendor, models.RoleAdmin))
		{
			vendor.POST("/cars", handlers.CreateCar)
			vendor.GET("/cars", handlers.ListVendorCars)
			vendor.PUT("/cars/:id", handlers.UpdateCar)
			vendor.DELETE("/cars/:id", handlers.DeleteCar)

			vendor.POST("/drivers", handlers.CreateDriver)
			vendor.GET("/drivers", handlers.ListVendorDrivers)
			vendor.PUT("/drivers/:id", handlers.UpdateDriver)
			vendor.DELETE("/drivers/:id", handlers.DeleteDriver)

			vendor.GET("/bookings", handlers.ListVendorBookings)
			vendor.POST("/validate-voucher", handlers.ValidateVoucher)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/discounts", handlers.CreateDiscount)
			admin.GET("/discounts", handlers.ListDiscounts)
			admin.PUT("/discounts/:id", handlers.UpdateDiscount)
			admin.DELETE("/discounts/:id", handlers.DeleteDiscount)

			admin.GET("/bookings", handlers.ListAllBookings)
			admin.GET("/users", handlers.ListUsers)
		}
	}
}
