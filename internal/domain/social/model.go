// Package social holds the wishlist and follow join rows. No lifecycle
// beyond create/delete; they only exist to decorate catalog reads.
package social

import (
	"time"

	"gorm.io/gorm"
)

type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_artwork" json:"user_id"`
	ArtworkID string    `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_artwork" json:"artwork_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_follows_user_artist" json:"user_id"`
	ArtistID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_follows_user_artist" json:"artist_id"`
	CreatedAt time.Time `json:"created_at"`
}

// IsWishlisted degrades gracefully: any lookup failure reads as "not in
// wishlist" rather than surfacing an error to the browse path.
func IsWishlisted(db *gorm.DB, userID uint, artworkID string) bool {
	var count int64
	if err := db.Model(&WishlistItem{}).
		Where("user_id = ? AND artwork_id = ?", userID, artworkID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// IsFollowing mirrors IsWishlisted for artist follows.
func IsFollowing(db *gorm.DB, userID uint, artistID string) bool {
	var count int64
	if err := db.Model(&Follow{}).
		Where("user_id = ? AND artist_id = ?", userID, artistID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}
