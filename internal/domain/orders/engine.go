package orders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gallery-app/internal/domain/audit"
	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/market"
	"gallery-app/internal/domain/offers"

	"gorm.io/gorm"
)

type CartItem struct {
	ArtworkID string
	// Wallet transaction hash supplied by the buyer's wallet extension.
	// Required for crypto checkouts, ignored for card.
	TxHash string
}

type PlaceOrderInput struct {
	UserID        uint
	Items         []CartItem
	PaymentMethod string
	Shipping      ShippingAddress
	WalletAddress string
	USDPerETH     float64
}

// ItemResult is the per-item outcome of a multi-item checkout. A failed
// item never rolls back the items before it; callers get the full list.
type ItemResult struct {
	ArtworkID string `json:"artwork_id"`
	Order     *Order `json:"order,omitempty"`
	Error     string `json:"error,omitempty"`

	err error
}

func (r ItemResult) Err() error { return r.err }

// PlaceOrder converts a cart into order rows item by item. For each
// item, availability is reserved with the atomic decrement BEFORE any
// payment bookkeeping, so a buyer racing for the last unit loses with
// ErrOutOfStock and no payment side effects.
//
// Crypto orders start as processing and are settled by the chain
// confirmation poller; card orders start as pending and are settled by
// the payment-provider webhook.
func PlaceOrder(db *gorm.DB, in PlaceOrderInput) ([]ItemResult, error) {
	if in.UserID == 0 {
		return nil, market.ErrUnauthenticated
	}
	if in.PaymentMethod != MethodCrypto && in.PaymentMethod != MethodCard {
		return nil, fmt.Errorf("%w: unknown payment method %q", market.ErrInvalidAmount, in.PaymentMethod)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: empty cart", market.ErrInvalidAmount)
	}

	results := make([]ItemResult, 0, len(in.Items))
	for _, item := range in.Items {
		order, err := placeOne(db, in, item)
		r := ItemResult{ArtworkID: item.ArtworkID, Order: order, err: err}
		if err != nil {
			r.Error = err.Error()
		}
		results = append(results, r)
	}
	return results, nil
}

func placeOne(db *gorm.DB, in PlaceOrderInput, item CartItem) (*Order, error) {
	artwork, err := catalog.GetArtwork(db, item.ArtworkID)
	if err != nil {
		return nil, err
	}
	if artwork.Status != catalog.StatusPublished {
		return nil, market.ErrConflict
	}
	if artwork.PriceUSD == nil || *artwork.PriceUSD <= 0 {
		return nil, market.ErrInvalidAmount
	}

	if in.PaymentMethod == MethodCrypto && strings.TrimSpace(item.TxHash) == "" {
		return nil, market.ErrUpstreamPayment
	}

	// Reserve the unit first; everything after this must compensate on failure.
	if err := catalog.DecrementAvailability(db, item.ArtworkID); err != nil {
		return nil, err
	}

	order := buildOrder(in, item, *artwork.PriceUSD, nil)
	if err := db.Create(order).Error; err != nil {
		if ierr := catalog.IncrementAvailability(db, item.ArtworkID); ierr != nil {
			return nil, fmt.Errorf("create order: %w (release failed: %v)", err, ierr)
		}
		return nil, err
	}

	audit.Record(db, in.UserID, "order.placed", "order", order.ID,
		fmt.Sprintf("%s %s for artwork %s ($%.2f)", order.OrderNumber, order.PaymentMethod, order.ArtworkID, order.AmountUSD))
	return order, nil
}

// FulfillAcceptedOffer is the explicit follow-up to an accepted offer:
// accepting never moves inventory, this call does. Buyer-driven; the
// unique index on orders.offer_id rejects a second fulfillment.
func FulfillAcceptedOffer(db *gorm.DB, offerID string, in PlaceOrderInput) (*Order, error) {
	if in.UserID == 0 {
		return nil, market.ErrUnauthenticated
	}
	if in.PaymentMethod != MethodCrypto && in.PaymentMethod != MethodCard {
		return nil, fmt.Errorf("%w: unknown payment method %q", market.ErrInvalidAmount, in.PaymentMethod)
	}

	offer, err := offers.Get(db, offerID)
	if err != nil {
		return nil, err
	}
	if offer.BuyerID != in.UserID {
		return nil, market.ErrUnauthorized
	}
	if offer.Status != offers.StatusAccepted {
		return nil, market.ErrConflict
	}

	var txHash string
	if len(in.Items) == 1 {
		txHash = in.Items[0].TxHash
	}
	if in.PaymentMethod == MethodCrypto && strings.TrimSpace(txHash) == "" {
		return nil, market.ErrUpstreamPayment
	}

	if err := catalog.DecrementAvailability(db, offer.ArtworkID); err != nil {
		return nil, err
	}

	order := buildOrder(in, CartItem{ArtworkID: offer.ArtworkID, TxHash: txHash}, offer.AmountUSD, &offer.ID)
	if err := db.Create(order).Error; err != nil {
		if ierr := catalog.IncrementAvailability(db, offer.ArtworkID); ierr != nil {
			return nil, fmt.Errorf("create order: %w (release failed: %v)", err, ierr)
		}
		// Almost always the offer_id unique index: already fulfilled.
		return nil, market.ErrConflict
	}

	audit.Record(db, in.UserID, "offer.fulfilled", "order", order.ID,
		fmt.Sprintf("%s fulfills offer %s", order.OrderNumber, offerID))
	return order, nil
}

func buildOrder(in PlaceOrderInput, item CartItem, amountUSD float64, offerID *string) *Order {
	order := &Order{
		OrderNumber:   NewOrderNumber(time.Now()),
		UserID:        in.UserID,
		ArtworkID:     item.ArtworkID,
		OfferID:       offerID,
		PaymentMethod: in.PaymentMethod,
		AmountUSD:     amountUSD,
		Currency:      "USD",
		Shipping:      in.Shipping,
	}

	switch in.PaymentMethod {
	case MethodCrypto:
		hash := strings.TrimSpace(item.TxHash)
		eth := market.USDToETH(amountUSD, in.USDPerETH)
		order.AmountCrypto = &eth
		order.Currency = "ETH"
		order.TransactionHash = &hash
		order.PaymentStatus = PaymentProcessing
		if in.WalletAddress != "" {
			addr := in.WalletAddress
			order.BuyerWalletAddress = &addr
		}
	case MethodCard:
		order.PaymentStatus = PaymentPending
	}
	return order
}

// SettlePayment moves an order out of its transient payment state.
// Guarded so completed/cancelled/refunded rows never transition again.
func SettlePayment(db *gorm.DB, orderID, target string) error {
	if target != PaymentCompleted && target != PaymentCancelled && target != PaymentRefunded {
		return fmt.Errorf("%w: invalid settlement state %q", market.ErrInvalidAmount, target)
	}
	res := db.Model(&Order{}).
		Where("id = ? AND payment_status IN ?", orderID, []string{PaymentPending, PaymentProcessing}).
		Update("payment_status", target)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return market.ErrConflict
	}

	// A cancelled order releases its reservation.
	if target == PaymentCancelled {
		var o Order
		if err := db.First(&o, "id = ?", orderID).Error; err == nil {
			if ierr := catalog.IncrementAvailability(db, o.ArtworkID); ierr != nil && !errors.Is(ierr, market.ErrConflict) {
				return ierr
			}
		}
	}
	return nil
}

// Get loads one order, scoped to its owning buyer unless admin is set.
func Get(db *gorm.DB, orderID string, userID uint, admin bool) (*Order, error) {
	var o Order
	q := db.Preload("Artwork").Where("id = ?", orderID)
	if !admin {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, market.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// ListByUser returns the buyer's order history, newest first.
func ListByUser(db *gorm.DB, userID uint) ([]Order, error) {
	var out []Order
	err := db.Preload("Artwork").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
