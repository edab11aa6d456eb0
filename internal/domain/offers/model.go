package offers

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// Offer is a buyer's proposed price for one artwork. Many offers may
// exist concurrently for the same artwork; they never rank each other.
type Offer struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ArtworkID string `gorm:"type:uuid;not null;index" json:"artwork_id"`
	BuyerID   uint   `gorm:"not null;index" json:"buyer_id"`
	SellerID  uint   `gorm:"not null;index" json:"seller_id"`

	AmountUSD float64 `gorm:"column:amount_usd;not null" json:"amount_usd"`
	AmountETH float64 `gorm:"column:amount_eth;not null" json:"amount_eth"`

	Message   string    `json:"message,omitempty"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	Status string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	// Bumped on every transition; guards read-modify-write races.
	Version int `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
