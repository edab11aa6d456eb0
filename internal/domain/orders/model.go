package orders

import (
	"time"

	"gallery-app/internal/domain/catalog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MethodCrypto = "crypto"
	MethodCard   = "card"

	PaymentPending    = "pending"
	PaymentProcessing = "processing"
	PaymentCompleted  = "completed"
	PaymentCancelled  = "cancelled"
	PaymentRefunded   = "refunded"
)

type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Order records one purchase attempt for one artwork unit. Multi-item
// checkouts produce one row per cart item; there is no parent cart row.
type Order struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber string `gorm:"not null;uniqueIndex:idx_orders_number" json:"order_number"`

	UserID    uint             `gorm:"not null;index" json:"user_id"`
	ArtworkID string           `gorm:"type:uuid;not null;index" json:"artwork_id"`
	Artwork   *catalog.Artwork `gorm:"foreignKey:ArtworkID" json:"artwork,omitempty"`

	// Set when the order fulfills an accepted offer; the unique index
	// makes double fulfillment impossible.
	OfferID *string `gorm:"type:uuid;uniqueIndex:idx_orders_offer" json:"offer_id,omitempty"`

	PaymentMethod string   `gorm:"type:varchar(10);not null" json:"payment_method"`
	AmountUSD     float64  `gorm:"column:amount_usd;not null" json:"amount_usd"`
	AmountCrypto  *float64 `gorm:"column:amount_crypto" json:"amount_crypto,omitempty"`
	Currency      string   `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`

	PaymentStatus string `gorm:"type:varchar(20);not null;index" json:"payment_status"`

	TransactionHash    *string `gorm:"column:transaction_hash" json:"transaction_hash,omitempty"`
	BuyerWalletAddress *string `gorm:"column:buyer_wallet_address" json:"buyer_wallet_address,omitempty"`
	StripeSessionID    *string `gorm:"column:stripe_session_id;index" json:"-"`

	Shipping ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
