package catalog

import (
	"errors"

	"gallery-app/internal/domain/market"

	"gorm.io/gorm"
)

func GetArtwork(db *gorm.DB, id string) (*Artwork, error) {
	var a Artwork
	if err := db.Preload("Artist").First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, market.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// DecrementAvailability reserves one edition unit with a single
// conditional UPDATE, so two buyers racing for the last unit cannot
// both succeed. Returns market.ErrOutOfStock when nothing is left.
func DecrementAvailability(db *gorm.DB, artworkID string) error {
	res := db.Model(&Artwork{}).
		Where("id = ? AND edition_available > 0", artworkID).
		UpdateColumn("edition_available", gorm.Expr("edition_available - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := db.Model(&Artwork{}).Where("id = ?", artworkID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return market.ErrNotFound
		}
		return market.ErrOutOfStock
	}

	// Exhausted editions flip the artwork to sold.
	return db.Model(&Artwork{}).
		Where("id = ? AND edition_available = 0 AND status = ?", artworkID, StatusPublished).
		UpdateColumn("status", StatusSold).Error
}

// IncrementAvailability releases a reservation after a failed or
// cancelled fulfillment step. Never exceeds edition_total.
func IncrementAvailability(db *gorm.DB, artworkID string) error {
	res := db.Model(&Artwork{}).
		Where("id = ? AND edition_available < edition_total", artworkID).
		UpdateColumn("edition_available", gorm.Expr("edition_available + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return market.ErrConflict
	}

	return db.Model(&Artwork{}).
		Where("id = ? AND edition_available > 0 AND status = ?", artworkID, StatusSold).
		UpdateColumn("status", StatusPublished).Error
}

// ArtistForUser resolves the artist profile linked to a user account.
func ArtistForUser(db *gorm.DB, userID uint) (*Artist, error) {
	var artist Artist
	if err := db.First(&artist, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, market.ErrNotFound
		}
		return nil, err
	}
	return &artist, nil
}
