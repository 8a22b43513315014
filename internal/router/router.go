package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mirakh/gallery-backend/config"
	"github.com/mirakh/gallery-backend/internal/app/controller"
	"github.com/mirakh/gallery-backend/internal/middleware"
)

type Router struct {
	paintingController   *controller.PaintingController
	exhibitionController *controller.ExhibitionController
	cartController       *controller.CartController
	wishlistController   *controller.WishlistController
	checkoutController   *controller.CheckoutController
	contactController    *controller.ContactController
	authController       *controller.AuthController
	googleAuthController *controller.GoogleAuthController
	dashboardController  *controller.DashboardController
	uploadController     *controller.UploadController
	orderFeedController  *controller.OrderFeedController
	authMiddleware       *middleware.AuthMiddleware
	sessionMiddleware    *middleware.SessionMiddleware
	config               *config.Config
}

func NewRouter(
	paintingController *controller.PaintingController,
	exhibitionController *controller.ExhibitionController,
	cartController *controller.CartController,
	wishlistController *controller.WishlistController,
	checkoutController *controller.CheckoutController,
	contactController *controller.ContactController,
	authController *controller.AuthController,
	googleAuthController *controller.GoogleAuthController,
	dashboardController *controller.DashboardController,
	uploadController *controller.UploadController,
	orderFeedController *controller.OrderFeedController,
	authMiddleware *middleware.AuthMiddleware,
	sessionMiddleware *middleware.SessionMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		paintingController:   paintingController,
		exhibitionController: exhibitionController,
		cartController:       cartController,
		wishlistController:   wishlistController,
		checkoutController:   checkoutController,
		contactController:    contactController,
		authController:       authController,
		googleAuthController: googleAuthController,
		dashboardController:  dashboardController,
		uploadController:     uploadController,
		orderFeedController:  orderFeedController,
		authMiddleware:       authMiddleware,
		sessionMiddleware:    sessionMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Gallery API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		paintings := v1.Group("/paintings")
		{
			paintings.GET("", r.paintingController.GetPaintings)
			paintings.GET("/featured", r.paintingController.GetFeaturedPaintings)
			paintings.GET("/categories", r.paintingController.GetCategories)
			paintings.GET("/:id", r.paintingController.GetPainting)
		}

		v1.GET("/exhibitions", r.exhibitionController.GetExhibitions)
		v1.POST("/contact", r.contactController.SubmitContact)

		auth := v1.Group("/auth")
		{
			auth.GET("/google/login", r.googleAuthController.Login)
			auth.GET("/google/callback", r.googleAuthController.Callback)
		}

		// Browser-facing state keyed by the anonymous session cookie.
		cart := v1.Group("/cart")
		cart.Use(r.sessionMiddleware.Identify())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:paintingId", r.cartController.UpdateCartItem)
			cart.DELETE("/:paintingId", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		wishlist := v1.Group("/wishlist")
		wishlist.Use(r.sessionMiddleware.Identify())
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.POST("", r.wishlistController.AddToWishlist)
			wishlist.DELETE("/:paintingId", r.wishlistController.RemoveFromWishlist)
		}

		checkout := v1.Group("/checkout")
		checkout.Use(r.sessionMiddleware.Identify())
		{
			checkout.POST("", r.checkoutController.PlaceOrder)
		}

		v1.GET("/orders/:orderNumber", r.checkoutController.GetOrder)

		admin := v1.Group("/admin")
		{
			admin.POST("/login", r.authController.Login)

			authed := admin.Group("")
			authed.Use(r.authMiddleware.RequireAdmin())
			{
				authed.GET("/me", r.authController.Me)
				authed.GET("/dashboard", r.dashboardController.GetStats)

				authed.POST("/paintings", r.paintingController.CreatePainting)
				authed.PUT("/paintings/:id", r.paintingController.UpdatePainting)
				authed.DELETE("/paintings/:id", r.paintingController.DeletePainting)

				authed.POST("/exhibitions", r.exhibitionController.CreateExhibition)
				authed.PUT("/exhibitions/:id", r.exhibitionController.UpdateExhibition)
				authed.DELETE("/exhibitions/:id", r.exhibitionController.DeleteExhibition)

				authed.GET("/orders", r.checkoutController.ListOrders)
				authed.GET("/orders/export", r.checkoutController.ExportOrders)
				authed.GET("/orders/feed", r.orderFeedController.Connect)
				authed.PUT("/orders/:id/status", r.checkoutController.UpdateOrderStatus)

				authed.GET("/contacts", r.contactController.ListContacts)
				authed.PUT("/contacts/:id/read", r.contactController.MarkContactRead)

				authed.POST("/upload/presigned-url", r.uploadController.GeneratePresignedURL)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
