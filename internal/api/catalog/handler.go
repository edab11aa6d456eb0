package catalog

import (
	"net/http"
	"strconv"

	"gallery-app/database"
	"gallery-app/internal/api/apierr"
	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/social"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// GET /artworks  (public browse)
// ------------------------------
func BrowseArtworks(c *gin.Context) {
	params := catalog.BrowseParams{
		Medium: c.Query("medium"),
		Sort:   c.DefaultQuery("sort", catalog.SortNewest),
	}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.MinPrice = &f
		}
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.MaxPrice = &f
		}
	}
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "24"))
	params.Normalize()

	items, total, err := catalog.ListPublished(database.DB, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}

	c.JSON(http.StatusOK, BrowseResponse{
		Items:   items,
		Total:   total,
		Page:    params.Page,
		PerPage: params.PerPage,
	})
}

// GET /artworks/:id
func GetArtwork(c *gin.Context) {
	artwork, err := catalog.GetArtwork(database.DB, c.Param("id"))
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	out := ArtworkResponse{Artwork: *artwork}
	if userID := c.GetUint("user_id"); userID != 0 {
		out.InWishlist = social.IsWishlisted(database.DB, userID, artwork.ID)
	}
	c.JSON(http.StatusOK, out)
}

// GET /artists
func ListArtists(c *gin.Context) {
	var artists []catalog.Artist
	if err := database.DB.Order("name ASC").Find(&artists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artists"})
		return
	}
	c.JSON(http.StatusOK, artists)
}

// GET /artists/:id  (profile + published works)
func GetArtist(c *gin.Context) {
	var artist catalog.Artist
	if err := database.DB.First(&artist, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artist not found"})
		return
	}

	var works []catalog.Artwork
	if err := database.DB.
		Where("artist_id = ? AND status IN ?", artist.ID, []string{catalog.StatusPublished, catalog.StatusSold}).
		Order("created_at DESC").
		Find(&works).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load works"})
		return
	}

	out := ArtistResponse{Artist: artist, Works: works}
	if userID := c.GetUint("user_id"); userID != 0 {
		out.Following = social.IsFollowing(database.DB, userID, artist.ID)
	}
	c.JSON(http.StatusOK, out)
}

// GET /collections/:id
func GetCollection(c *gin.Context) {
	var collection catalog.Collection
	err := database.DB.
		Preload("Items", "status IN ?", []string{catalog.StatusPublished, catalog.StatusSold}).
		First(&collection, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}
	c.JSON(http.StatusOK, collection)
}

// GET /artists/:id/collections
func ListArtistCollections(c *gin.Context) {
	var collections []catalog.Collection
	if err := database.DB.
		Where("artist_id = ?", c.Param("id")).
		Order("created_at DESC").
		Find(&collections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load collections"})
		return
	}
	c.JSON(http.StatusOK, collections)
}
