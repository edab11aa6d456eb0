package catalog

import (
	"net/http"

	"gallery-app/database"
	"gallery-app/internal/api/apierr"
	"gallery-app/internal/domain/audit"
	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// mustManagedArtwork loads an artwork the acting user may manage:
// the owning artist, or an admin.
func mustManagedArtwork(c *gin.Context, userID uint) (*catalog.Artwork, bool) {
	artwork, err := catalog.GetArtwork(database.DB, c.Param("id"))
	if err != nil {
		apierr.Abort(c, err)
		return nil, false
	}
	if c.GetString("role") == users.RoleAdmin {
		return artwork, true
	}

	artist, err := catalog.ArtistForUser(database.DB, userID)
	if err != nil || artist.ID != artwork.ArtistID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your artwork"})
		return nil, false
	}
	return artwork, true
}

// ------------------------------
// POST /manage/artworks
// ------------------------------
func CreateArtwork(c *gin.Context) {
	var req CreateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	artist, err := catalog.ArtistForUser(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No artist profile"})
		return
	}

	if req.EditionTotal < 1 {
		req.EditionTotal = 1
	}
	if req.PriceUSD != nil && *req.PriceUSD <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
		return
	}

	artwork := catalog.Artwork{
		ArtistID:         artist.ID,
		CollectionID:     req.CollectionID,
		Title:            req.Title,
		Description:      req.Description,
		Medium:           req.Medium,
		Year:             req.Year,
		SizeCM:           req.SizeCM,
		ImageURL:         req.ImageURL,
		PriceUSD:         req.PriceUSD,
		PriceETH:         req.PriceETH,
		EditionTotal:     req.EditionTotal,
		EditionAvailable: req.EditionTotal,
		Status:           catalog.StatusDraft,
	}
	if err := database.DB.Create(&artwork).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create artwork"})
		return
	}

	audit.Record(database.DB, userID, "artwork.created", "artwork", artwork.ID, artwork.Title)
	c.JSON(http.StatusCreated, artwork)
}

// PUT /manage/artworks/:id
func UpdateArtwork(c *gin.Context) {
	var req UpdateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	artwork, ok := mustManagedArtwork(c, userID)
	if !ok {
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Medium != nil {
		updates["medium"] = *req.Medium
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.SizeCM != nil {
		updates["size_cm"] = *req.SizeCM
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.PriceUSD != nil {
		if *req.PriceUSD <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
			return
		}
		updates["price_usd"] = *req.PriceUSD
	}
	if req.PriceETH != nil {
		updates["price_eth"] = *req.PriceETH
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&catalog.Artwork{}).
		Where("id = ?", artwork.ID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update artwork"})
		return
	}

	audit.Record(database.DB, userID, "artwork.updated", "artwork", artwork.ID, "")
	c.JSON(http.StatusOK, gin.H{"id": artwork.ID})
}

// POST /manage/artworks/:id/publish
func PublishArtwork(c *gin.Context) {
	setArtworkStatus(c, catalog.StatusDraft, catalog.StatusPublished, "artwork.published")
}

// POST /manage/artworks/:id/archive
// Archival is terminal withdrawal; any non-sold state may enter it.
func ArchiveArtwork(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	artwork, ok := mustManagedArtwork(c, userID)
	if !ok {
		return
	}

	res := database.DB.Model(&catalog.Artwork{}).
		Where("id = ? AND status IN ?", artwork.ID, []string{catalog.StatusDraft, catalog.StatusPublished}).
		Update("status", catalog.StatusArchived)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive artwork"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Artwork can no longer be archived"})
		return
	}

	audit.Record(database.DB, userID, "artwork.archived", "artwork", artwork.ID, "")
	c.JSON(http.StatusOK, gin.H{"id": artwork.ID, "status": catalog.StatusArchived})
}

// DELETE /manage/artworks/:id  (drafts only)
func DeleteArtwork(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	artwork, ok := mustManagedArtwork(c, userID)
	if !ok {
		return
	}
	if artwork.Status != catalog.StatusDraft {
		c.JSON(http.StatusConflict, gin.H{"error": "Only drafts can be deleted; archive instead"})
		return
	}

	if err := database.DB.Delete(&catalog.Artwork{}, "id = ?", artwork.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete artwork"})
		return
	}
	audit.Record(database.DB, userID, "artwork.deleted", "artwork", artwork.ID, "")
	c.Status(http.StatusNoContent)
}

// GET /manage/artworks  (own works, any status)
func ListOwnArtworks(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	artist, err := catalog.ArtistForUser(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No artist profile"})
		return
	}

	var works []catalog.Artwork
	if err := database.DB.
		Where("artist_id = ?", artist.ID).
		Order("created_at DESC").
		Find(&works).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load works"})
		return
	}
	c.JSON(http.StatusOK, works)
}

// POST /manage/collections
func CreateCollection(c *gin.Context) {
	var req CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	artist, err := catalog.ArtistForUser(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No artist profile"})
		return
	}

	collection := catalog.Collection{
		ArtistID:      artist.ID,
		Title:         req.Title,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
	}
	if err := database.DB.Create(&collection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create collection"})
		return
	}

	audit.Record(database.DB, userID, "collection.created", "collection", collection.ID, collection.Title)
	c.JSON(http.StatusCreated, collection)
}

func setArtworkStatus(c *gin.Context, from, to, action string) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	artwork, ok := mustManagedArtwork(c, userID)
	if !ok {
		return
	}

	res := database.DB.Model(&catalog.Artwork{}).
		Where("id = ? AND status = ?", artwork.ID, from).
		Update("status", to)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Artwork is not " + from})
		return
	}

	audit.Record(database.DB, userID, action, "artwork", artwork.ID, "")
	c.JSON(http.StatusOK, gin.H{"id": artwork.ID, "status": to})
}
