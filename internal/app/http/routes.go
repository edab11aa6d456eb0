package routes

import (
	adminapi "gallery-app/internal/api/admin"
	authapi "gallery-app/internal/api/auth"
	catalogapi "gallery-app/internal/api/catalog"
	listingsapi "gallery-app/internal/api/listings"
	offersapi "gallery-app/internal/api/offers"
	ordersapi "gallery-app/internal/api/orders"
	socialapi "gallery-app/internal/api/social"
	"gallery-app/internal/api/stripewebhook"
	"gallery-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.POST("/webhook", stripewebhook.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public browsing + signup, with input sanitization
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	public.GET("/artworks", catalogapi.BrowseArtworks)
	public.GET("/artworks/:id", catalogapi.GetArtwork)
	public.GET("/artists", catalogapi.ListArtists)
	public.GET("/artists/:id", catalogapi.GetArtist)
	public.GET("/artists/:id/collections", catalogapi.ListArtistCollections)
	public.GET("/collections/:id", catalogapi.GetCollection)
	public.GET("/listings", listingsapi.BrowseListings)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", authapi.Me)
	auth.PUT("/me", authapi.UpdateMe)
	auth.POST("/change-password", authapi.ChangePassword)
	auth.GET("/activity", socialapi.ListMyActivity)

	auth.POST("/offers", offersapi.CreateOffer)
	auth.GET("/offers", offersapi.ListOffers)
	auth.POST("/offers/:id/accept", offersapi.AcceptOffer)
	auth.POST("/offers/:id/reject", offersapi.RejectOffer)
	auth.POST("/offers/:id/cancel", offersapi.CancelOffer)
	auth.POST("/offers/:id/fulfill", offersapi.FulfillOffer)

	auth.POST("/listings", listingsapi.CreateListing)
	auth.PATCH("/listings/:id", listingsapi.ToggleListing)
	auth.DELETE("/listings/:id", listingsapi.DeleteListing)
	auth.GET("/my/listings", listingsapi.ListMyListings)

	auth.POST("/orders", ordersapi.Checkout)
	auth.GET("/orders", ordersapi.ListMyOrders)
	auth.GET("/orders/:id", ordersapi.GetOrder)

	auth.GET("/wishlist", socialapi.ListWishlist)
	auth.GET("/wishlist/:artworkId", socialapi.CheckWishlist)
	auth.POST("/wishlist/:artworkId", socialapi.AddToWishlist)
	auth.DELETE("/wishlist/:artworkId", socialapi.RemoveFromWishlist)
	auth.GET("/follows", socialapi.ListFollowedArtists)
	auth.POST("/follows/:artistId", socialapi.FollowArtist)
	auth.DELETE("/follows/:artistId", socialapi.UnfollowArtist)

	// Artists (and admins) manage their catalog
	manage := auth.Group("/manage")
	manage.Use(middleware.RequireRole("artist", "admin"))
	manage.GET("/artworks", catalogapi.ListOwnArtworks)
	manage.POST("/artworks", catalogapi.CreateArtwork)
	manage.PUT("/artworks/:id", catalogapi.UpdateArtwork)
	manage.DELETE("/artworks/:id", catalogapi.DeleteArtwork)
	manage.POST("/artworks/:id/publish", catalogapi.PublishArtwork)
	manage.POST("/artworks/:id/archive", catalogapi.ArchiveArtwork)
	manage.POST("/collections", catalogapi.CreateCollection)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.Dashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/orders", adminapi.ListAllOrders)
	admin.GET("/audit", adminapi.ListAuditEvents)
}
