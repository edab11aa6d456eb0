package listings

import (
	"errors"
	"fmt"
	"time"

	"gallery-app/internal/domain/audit"
	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/market"

	"gorm.io/gorm"
)

type CreateInput struct {
	ArtworkID     string
	SellerID      uint
	ListingType   string
	PriceUSD      float64
	PriceETH      *float64
	MinimumBidUSD *float64
	AuctionEndAt  *time.Time
}

// Create opens a resale listing. Ownership is enforced here against the
// artwork's current owner, not trusted from the caller.
func Create(db *gorm.DB, in CreateInput) (*Listing, error) {
	if in.SellerID == 0 {
		return nil, market.ErrUnauthenticated
	}
	if in.ListingType != TypeFixed && in.ListingType != TypeAuction {
		return nil, fmt.Errorf("%w: unknown listing type %q", market.ErrInvalidAmount, in.ListingType)
	}
	if in.PriceUSD <= 0 {
		return nil, market.ErrInvalidAmount
	}
	if in.ListingType == TypeAuction {
		if in.MinimumBidUSD == nil || *in.MinimumBidUSD <= 0 {
			return nil, market.ErrInvalidAmount
		}
		if in.AuctionEndAt == nil || in.AuctionEndAt.Before(time.Now()) {
			return nil, market.ErrInvalidAmount
		}
	}

	artwork, err := catalog.GetArtwork(db, in.ArtworkID)
	if err != nil {
		return nil, err
	}
	if artwork.CurrentOwnerID == nil || *artwork.CurrentOwnerID != in.SellerID {
		return nil, market.ErrUnauthorized
	}

	l := Listing{
		ArtworkID:     in.ArtworkID,
		SellerID:      in.SellerID,
		ListingType:   in.ListingType,
		PriceUSD:      in.PriceUSD,
		PriceETH:      in.PriceETH,
		MinimumBidUSD: in.MinimumBidUSD,
		AuctionEndAt:  in.AuctionEndAt,
		IsActive:      true,
	}
	if err := db.Create(&l).Error; err != nil {
		return nil, err
	}

	audit.Record(db, in.SellerID, "listing.created", "listing", l.ID,
		fmt.Sprintf("%s listing for artwork %s at $%.2f", l.ListingType, l.ArtworkID, l.PriceUSD))
	return &l, nil
}

// ToggleActive flips is_active under an optimistic version check.
func ToggleActive(db *gorm.DB, listingID string, actingUserID uint) (*Listing, error) {
	l, err := get(db, listingID)
	if err != nil {
		return nil, err
	}
	if l.SellerID != actingUserID {
		return nil, market.ErrUnauthorized
	}

	res := db.Model(&Listing{}).
		Where("id = ? AND version = ?", l.ID, l.Version).
		Updates(map[string]interface{}{
			"is_active": !l.IsActive,
			"version":   l.Version + 1,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, market.ErrConflict
	}

	l.IsActive = !l.IsActive
	l.Version++
	audit.Record(db, actingUserID, "listing.toggled", "listing", l.ID,
		fmt.Sprintf("is_active=%t", l.IsActive))
	return l, nil
}

// Delete hard-deletes a listing; the row is gone, not soft-archived.
func Delete(db *gorm.DB, listingID string, actingUserID uint) error {
	l, err := get(db, listingID)
	if err != nil {
		return err
	}
	if l.SellerID != actingUserID {
		return market.ErrUnauthorized
	}
	if err := db.Delete(&Listing{}, "id = ?", l.ID).Error; err != nil {
		return err
	}
	audit.Record(db, actingUserID, "listing.deleted", "listing", l.ID, "")
	return nil
}

// ActiveAuctionFor returns the active auction listing for an artwork,
// or nil when there is none. Used by the offer engine as a bid floor.
func ActiveAuctionFor(db *gorm.DB, artworkID string) (*Listing, error) {
	var l Listing
	err := db.Where("artwork_id = ? AND listing_type = ? AND is_active = ?", artworkID, TypeAuction, true).
		Order("created_at DESC").
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListActive returns active listings for marketplace browsing.
func ListActive(db *gorm.DB, limit, offset int) ([]Listing, error) {
	if limit <= 0 || limit > 100 {
		limit = 24
	}
	var out []Listing
	err := db.Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

// ListBySeller returns all listings (active or not) owned by a user.
func ListBySeller(db *gorm.DB, sellerID uint) ([]Listing, error) {
	var out []Listing
	err := db.Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func get(db *gorm.DB, id string) (*Listing, error) {
	var l Listing
	if err := db.First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, market.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}
