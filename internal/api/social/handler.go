package social

import (
	"net/http"
	"strconv"

	"gallery-app/database"
	"gallery-app/internal/domain/audit"
	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/social"

	"github.com/gin-gonic/gin"
)

// POST /wishlist/:artworkId
func AddToWishlist(c *gin.Context) {
	userID := c.GetUint("user_id")
	artworkID := c.Param("artworkId")

	if _, err := catalog.GetArtwork(database.DB, artworkID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	item := social.WishlistItem{UserID: userID, ArtworkID: artworkID}
	if err := database.DB.Create(&item).Error; err != nil {
		// Unique index hit: already wishlisted, treat as success.
		c.JSON(http.StatusOK, gin.H{"in_wishlist": true})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"in_wishlist": true})
}

// DELETE /wishlist/:artworkId
func RemoveFromWishlist(c *gin.Context) {
	userID := c.GetUint("user_id")
	if err := database.DB.
		Where("user_id = ? AND artwork_id = ?", userID, c.Param("artworkId")).
		Delete(&social.WishlistItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"in_wishlist": false})
}

// GET /wishlist
func ListWishlist(c *gin.Context) {
	userID := c.GetUint("user_id")

	var items []social.WishlistItem
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wishlist"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusOK, []catalog.Artwork{})
		return
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ArtworkID)
	}

	var works []catalog.Artwork
	if err := database.DB.Preload("Artist").Where("id IN ?", ids).Find(&works).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wishlist"})
		return
	}
	c.JSON(http.StatusOK, works)
}

// GET /wishlist/:artworkId  (membership check; failures read as false)
func CheckWishlist(c *gin.Context) {
	userID := c.GetUint("user_id")
	c.JSON(http.StatusOK, gin.H{
		"in_wishlist": social.IsWishlisted(database.DB, userID, c.Param("artworkId")),
	})
}

// POST /follows/:artistId
func FollowArtist(c *gin.Context) {
	userID := c.GetUint("user_id")
	artistID := c.Param("artistId")

	var artist catalog.Artist
	if err := database.DB.First(&artist, "id = ?", artistID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artist not found"})
		return
	}

	follow := social.Follow{UserID: userID, ArtistID: artistID}
	if err := database.DB.Create(&follow).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"following": true})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"following": true})
}

// DELETE /follows/:artistId
func UnfollowArtist(c *gin.Context) {
	userID := c.GetUint("user_id")
	if err := database.DB.
		Where("user_id = ? AND artist_id = ?", userID, c.Param("artistId")).
		Delete(&social.Follow{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": false})
}

// GET /follows
func ListFollowedArtists(c *gin.Context) {
	userID := c.GetUint("user_id")

	var follows []social.Follow
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&follows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load follows"})
		return
	}
	if len(follows) == 0 {
		c.JSON(http.StatusOK, []catalog.Artist{})
		return
	}

	ids := make([]string, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.ArtistID)
	}

	var artists []catalog.Artist
	if err := database.DB.Where("id IN ?", ids).Find(&artists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load follows"})
		return
	}
	c.JSON(http.StatusOK, artists)
}

// GET /activity  (the user's own audit trail, for toasts/dashboards)
func ListMyActivity(c *gin.Context) {
	userID := c.GetUint("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	events, err := audit.ListForActor(database.DB, userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity"})
		return
	}
	c.JSON(http.StatusOK, events)
}
