package orders_test

import (
	"sync"
	"testing"

	"gallery-app/internal/domain/audit"
	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/market"
	"gallery-app/internal/domain/offers"
	"gallery-app/internal/domain/orders"
	"gallery-app/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	buyerID  = uint(10)
	sellerID = uint(20)
)

func openDB(t *testing.T) *gorm.DB {
	return testdb.Open(t,
		&catalog.Artist{}, &catalog.Artwork{},
		&offers.Offer{}, &orders.Order{}, &audit.Event{},
	)
}

func seedArtwork(t *testing.T, db *gorm.DB, editions int) *catalog.Artwork {
	t.Helper()
	uid := sellerID
	artist := catalog.Artist{Name: "Seller", UserID: &uid}
	require.NoError(t, db.Create(&artist).Error)

	price := 1200.0
	a := catalog.Artwork{
		ArtistID:         artist.ID,
		Title:            "Checkout Piece",
		PriceUSD:         &price,
		EditionTotal:     editions,
		EditionAvailable: editions,
		Status:           catalog.StatusPublished,
	}
	require.NoError(t, db.Create(&a).Error)
	return &a
}

func cryptoInput(items ...orders.CartItem) orders.PlaceOrderInput {
	return orders.PlaceOrderInput{
		UserID:        buyerID,
		Items:         items,
		PaymentMethod: orders.MethodCrypto,
		WalletAddress: "0xabc",
		USDPerETH:     3000,
		Shipping:      orders.ShippingAddress{FullName: "A Collector", Line1: "1 Main St", City: "Lisbon", PostalCode: "1000", Country: "PT"},
	}
}

func TestPlaceOrderCrypto(t *testing.T) {
	db := openDB(t)
	a := seedArtwork(t, db, 2)

	results, err := orders.PlaceOrder(db, cryptoInput(orders.CartItem{ArtworkID: a.ID, TxHash: "0xdeadbeef"}))
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err())

	o := results[0].Order
	require.NotNil(t, o)
	assert.Equal(t, orders.PaymentProcessing, o.PaymentStatus)
	assert.Equal(t, "ETH", o.Currency)
	assert.Equal(t, 0.4, *o.AmountCrypto)
	assert.Equal(t, "0xdeadbeef", *o.TransactionHash)

	got, err := catalog.GetArtwork(db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.EditionAvailable, "placing reserves the unit")
}

func TestPlaceOrderCard(t *testing.T) {
	db := openDB(t)
	a := seedArtwork(t, db, 1)

	in := cryptoInput(orders.CartItem{ArtworkID: a.ID})
	in.PaymentMethod = orders.MethodCard

	results, err := orders.PlaceOrder(db, in)
	require.NoError(t, err)
	require.NoError(t, results[0].Err())
	assert.Equal(t, orders.PaymentPending, results[0].Order.PaymentStatus)
	assert.Equal(t, "USD", results[0].Order.Currency)
}

func TestPlaceOrderValidation(t *testing.T) {
	db := openDB(t)
	a := seedArtwork(t, db, 1)

	in := cryptoInput(orders.CartItem{ArtworkID: a.ID, TxHash: "0x1"})
	in.UserID = 0
	_, err := orders.PlaceOrder(db, in)
	assert.ErrorIs(t, err, market.ErrUnauthenticated)

	in = cryptoInput(orders.CartItem{ArtworkID: a.ID, TxHash: "0x1"})
	in.PaymentMethod = "paypal"
	_, err = orders.PlaceOrder(db, in)
	assert.ErrorIs(t, err, market.ErrInvalidAmount)

	in = cryptoInput()
	_, err = orders.PlaceOrder(db, in)
	assert.ErrorIs(t, err, market.ErrInvalidAmount, "empty cart")
}

func TestPlaceOrderMissingTxHashLeavesAvailabilityAlone(t *testing.T) {
	db := openDB(t)
	a := seedArtwork(t, db, 1)

	results, err := orders.PlaceOrder(db, cryptoInput(orders.CartItem{ArtworkID: a.ID}))
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err(), market.ErrUpstreamPayment)

	got, err := catalog.GetArtwork(db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.EditionAvailable, "failed payment check must not reserve")
}

func TestPlaceOrderPerItemResults(t *testing.T) {
	db := openDB(t)
	a := seedArtwork(t, db, 1)

	// Two items: the good one and a draft that cannot be bought. The
	// good item still goes through.
	draft := seedArtwork(t, db, 1)
	require.NoError(t, db.Model(&catalog.Artwork{}).
		Where("id = ?", draft.ID).
		Update("status", catalog.StatusDraft).Error)

	results, err := orders.PlaceOrder(db, cryptoInput(
		orders.CartItem{ArtworkID: draft.ID, TxHash: "0x1"},
		orders.CartItem{ArtworkID: a.ID, TxHash: "0x2"},
	))
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.ErrorIs(t, results[0].Err(), market.ErrConflict)
	assert.Nil(t, results[0].Order)
	assert.NoError(t, results[1].Err())
	assert.NotNil(t, results[1].Order)
}

func TestPlaceOrderConcurrentLastUnit(t *testing.T) {
	db := openDB(t)
	a := seedArtwork(t, db, 1)

	const buyers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		outOfSold int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results, err := orders.PlaceOrder(db, cryptoInput(orders.CartItem{ArtworkID: a.ID, TxHash: "0xrace"}))
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			switch results[0].Err() {
			case nil:
				succeeded++
			case market.ErrOutOfStock:
				outOfSold++
			default:
				t.Errorf("unexpected item error: %v", results[0].Err())
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "exactly one buyer wins the last unit")
	assert.Equal(t, buyers-1, outOfSold)
}

func TestFulfillAcceptedOffer(t *testing.T) {
	db := openDB(t)
	a := seedArtwork(t, db, 1)

	offer, err := offers.Create(db, offers.CreateInput{
		ArtworkID: a.ID, BuyerID: buyerID, AmountUSD: 800, ExpiryDays: 7, USDPerETH: 3000,
	})
	require.NoError(t, err)

	in := cryptoInput(orders.CartItem{ArtworkID: a.ID, TxHash: "0xfulfill"})

	// Not accepted yet.
	_, err = orders.FulfillAcceptedOffer(db, offer.ID, in)
	assert.ErrorIs(t, err, market.ErrConflict)

	_, err = offers.Accept(db, offer.ID, sellerID)
	require.NoError(t, err)

	// Only the offer's buyer may fulfill.
	stranger := in
	stranger.UserID = 99
	_, err = orders.FulfillAcceptedOffer(db, offer.ID, stranger)
	assert.ErrorIs(t, err, market.ErrUnauthorized)

	order, err := orders.FulfillAcceptedOffer(db, offer.ID, in)
	require.NoError(t, err)
	require.NotNil(t, order.OfferID)
	assert.Equal(t, offer.ID, *order.OfferID)
	assert.Equal(t, 800.0, order.AmountUSD, "offer price, not list price")

	got, err := catalog.GetArtwork(db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.EditionAvailable)

	// Second fulfillment bounces off the offer_id unique index and
	// releases the re-reserved unit.
	_, err = orders.FulfillAcceptedOffer(db, offer.ID, in)
	assert.Error(t, err)
}

func TestSettlePayment(t *testing.T) {
	db := openDB(t)
	a := seedArtwork(t, db, 1)

	results, err := orders.PlaceOrder(db, cryptoInput(orders.CartItem{ArtworkID: a.ID, TxHash: "0x1"}))
	require.NoError(t, err)
	order := results[0].Order

	require.NoError(t, orders.SettlePayment(db, order.ID, orders.PaymentCompleted))

	got, err := orders.Get(db, order.ID, buyerID, false)
	require.NoError(t, err)
	assert.Equal(t, orders.PaymentCompleted, got.PaymentStatus)

	// Completed orders never transition again.
	err = orders.SettlePayment(db, order.ID, orders.PaymentCancelled)
	assert.ErrorIs(t, err, market.ErrConflict)

	err = orders.SettlePayment(db, order.ID, "weird")
	assert.ErrorIs(t, err, market.ErrInvalidAmount)
}

func TestSettlePaymentCancelReleasesReservation(t *testing.T) {
	db := openDB(t)
	a := seedArtwork(t, db, 1)

	results, err := orders.PlaceOrder(db, cryptoInput(orders.CartItem{ArtworkID: a.ID, TxHash: "0x1"}))
	require.NoError(t, err)
	order := results[0].Order

	got, err := catalog.GetArtwork(db, a.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.EditionAvailable)

	require.NoError(t, orders.SettlePayment(db, order.ID, orders.PaymentCancelled))

	got, err = catalog.GetArtwork(db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.EditionAvailable)
	assert.Equal(t, catalog.StatusPublished, got.Status, "cancellation puts the unit back on sale")
}

func TestGetScopesToBuyer(t *testing.T) {
	db := openDB(t)
	a := seedArtwork(t, db, 1)

	results, err := orders.PlaceOrder(db, cryptoInput(orders.CartItem{ArtworkID: a.ID, TxHash: "0x1"}))
	require.NoError(t, err)
	order := results[0].Order

	_, err = orders.Get(db, order.ID, 99, false)
	assert.ErrorIs(t, err, market.ErrNotFound, "other buyers cannot see the order")

	got, err := orders.Get(db, order.ID, 99, true)
	require.NoError(t, err, "admins can")
	assert.Equal(t, order.ID, got.ID)
}
