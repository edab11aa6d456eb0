package listings

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeFixed   = "fixed"
	TypeAuction = "auction"
)

// Listing is an owner-initiated resale record. Inactive listings stay
// in the table for history but are excluded from marketplace browsing.
type Listing struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ArtworkID string `gorm:"type:uuid;not null;index" json:"artwork_id"`
	SellerID  uint   `gorm:"not null;index" json:"seller_id"`

	ListingType string `gorm:"type:varchar(10);not null" json:"listing_type"`

	PriceUSD      float64    `gorm:"column:price_usd;not null" json:"price_usd"`
	PriceETH      *float64   `gorm:"column:price_eth" json:"price_eth,omitempty"`
	MinimumBidUSD *float64   `gorm:"column:minimum_bid_usd" json:"minimum_bid_usd,omitempty"`
	AuctionEndAt  *time.Time `gorm:"column:auction_end_at" json:"auction_end_at,omitempty"`

	IsActive bool `gorm:"not null;default:true;index" json:"is_active"`

	// Bumped on every state change; guards read-modify-write races.
	Version int `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// AuctionEnded reports whether an auction listing is past its end time.
func (l *Listing) AuctionEnded(now time.Time) bool {
	return l.ListingType == TypeAuction && l.AuctionEndAt != nil && now.After(*l.AuctionEndAt)
}
