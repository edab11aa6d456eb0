package offers

import (
	"errors"
	"fmt"
	"time"

	"gallery-app/internal/domain/audit"
	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/listings"
	"gallery-app/internal/domain/market"

	"gorm.io/gorm"
)

type CreateInput struct {
	ArtworkID  string
	BuyerID    uint
	AmountUSD  float64
	Message    string
	ExpiryDays int
	// USD per ETH rate used to derive the quoted ETH amount.
	USDPerETH float64
}

// Create opens a pending offer. The seller is the artwork's current
// owner when one exists, otherwise the artist's linked account. An
// active auction listing on the artwork acts as a bid floor.
func Create(db *gorm.DB, in CreateInput) (*Offer, error) {
	if in.BuyerID == 0 {
		return nil, market.ErrUnauthenticated
	}
	if in.AmountUSD <= 0 {
		return nil, market.ErrInvalidAmount
	}
	if in.ExpiryDays <= 0 {
		in.ExpiryDays = 7
	}

	artwork, err := catalog.GetArtwork(db, in.ArtworkID)
	if err != nil {
		return nil, err
	}
	if artwork.Status != catalog.StatusPublished && artwork.Status != catalog.StatusSold {
		return nil, market.ErrConflict
	}

	sellerID, err := resolveSeller(db, artwork)
	if err != nil {
		return nil, err
	}
	if sellerID == in.BuyerID {
		return nil, market.ErrConflict
	}

	now := time.Now()
	if auction, err := listings.ActiveAuctionFor(db, in.ArtworkID); err != nil {
		return nil, err
	} else if auction != nil {
		if auction.AuctionEnded(now) {
			return nil, market.ErrConflict
		}
		if auction.MinimumBidUSD != nil && in.AmountUSD < *auction.MinimumBidUSD {
			return nil, fmt.Errorf("%w: below minimum bid of $%.2f", market.ErrInvalidAmount, *auction.MinimumBidUSD)
		}
	}

	o := Offer{
		ArtworkID: in.ArtworkID,
		BuyerID:   in.BuyerID,
		SellerID:  sellerID,
		AmountUSD: in.AmountUSD,
		AmountETH: market.USDToETH(in.AmountUSD, in.USDPerETH),
		Message:   in.Message,
		ExpiresAt: now.AddDate(0, 0, in.ExpiryDays),
		Status:    StatusPending,
	}
	if err := db.Create(&o).Error; err != nil {
		return nil, err
	}

	audit.Record(db, in.BuyerID, "offer.created", "offer", o.ID,
		fmt.Sprintf("$%.2f on artwork %s", o.AmountUSD, o.ArtworkID))
	return &o, nil
}

// Accept transitions a pending offer to accepted. It deliberately does
// NOT touch catalog availability or create an order; the buyer follows
// up with the fulfillment call on the order engine.
func Accept(db *gorm.DB, offerID string, actingUserID uint) (*Offer, error) {
	return transition(db, offerID, actingUserID, StatusAccepted, CanAccept, "offer.accepted")
}

// Reject transitions a pending offer to rejected (seller only).
func Reject(db *gorm.DB, offerID string, actingUserID uint) (*Offer, error) {
	return transition(db, offerID, actingUserID, StatusRejected, CanReject, "offer.rejected")
}

// Cancel transitions a pending offer to cancelled (buyer only).
func Cancel(db *gorm.DB, offerID string, actingUserID uint) (*Offer, error) {
	return transition(db, offerID, actingUserID, StatusCancelled, CanCancel, "offer.cancelled")
}

func transition(
	db *gorm.DB,
	offerID string,
	actingUserID uint,
	target string,
	check func(*Offer, uint, time.Time) error,
	action string,
) (*Offer, error) {
	o, err := Get(db, offerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := check(o, actingUserID, now); err != nil {
		if PastExpiry(o, now) {
			markExpired(db, o)
		}
		return nil, err
	}

	res := db.Model(&Offer{}).
		Where("id = ? AND status = ? AND version = ?", o.ID, StatusPending, o.Version).
		Updates(map[string]interface{}{
			"status":  target,
			"version": o.Version + 1,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race against a concurrent transition.
		return nil, market.ErrConflict
	}

	o.Status = target
	o.Version++
	audit.Record(db, actingUserID, action, "offer", o.ID, "")
	return o, nil
}

// markExpired persists the lazy expiry outcome. Best effort: losing the
// conditional update just means someone else already transitioned it.
func markExpired(db *gorm.DB, o *Offer) {
	db.Model(&Offer{}).
		Where("id = ? AND status = ? AND version = ?", o.ID, StatusPending, o.Version).
		Updates(map[string]interface{}{
			"status":  StatusExpired,
			"version": o.Version + 1,
		})
}

func Get(db *gorm.DB, id string) (*Offer, error) {
	var o Offer
	if err := db.First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, market.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// ListByBuyer returns offers the user made, newest first.
func ListByBuyer(db *gorm.DB, buyerID uint) ([]Offer, error) {
	return list(db, "buyer_id = ?", buyerID)
}

// ListBySeller returns offers the user received, newest first.
func ListBySeller(db *gorm.DB, sellerID uint) ([]Offer, error) {
	return list(db, "seller_id = ?", sellerID)
}

func list(db *gorm.DB, cond string, arg interface{}) ([]Offer, error) {
	var out []Offer
	if err := db.Where(cond, arg).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range out {
		out[i].Status = EffectiveStatus(&out[i], now)
	}
	return out, nil
}

func resolveSeller(db *gorm.DB, artwork *catalog.Artwork) (uint, error) {
	if artwork.CurrentOwnerID != nil {
		return *artwork.CurrentOwnerID, nil
	}
	var artist catalog.Artist
	if err := db.First(&artist, "id = ?", artwork.ArtistID).Error; err != nil {
		return 0, market.ErrNotFound
	}
	if artist.UserID == nil {
		return 0, market.ErrConflict
	}
	return *artist.UserID, nil
}
