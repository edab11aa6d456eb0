package offers

import (
	"net/http"

	"gallery-app/config"
	"gallery-app/database"
	"gallery-app/internal/api/apierr"
	"gallery-app/internal/domain/offers"
	"gallery-app/internal/domain/orders"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createOfferRequest struct {
	ArtworkID  string  `json:"artwork_id" binding:"required"`
	AmountUSD  float64 `json:"amount_usd" binding:"required"`
	Message    string  `json:"message"`
	ExpiryDays int     `json:"expiry_days"`
}

type fulfillRequest struct {
	PaymentMethod string                 `json:"payment_method" binding:"required"`
	TxHash        string                 `json:"tx_hash"`
	WalletAddress string                 `json:"wallet_address"`
	Shipping      orders.ShippingAddress `json:"shipping"`
}

// POST /offers
func CreateOffer(c *gin.Context) {
	var req createOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expiryDays := req.ExpiryDays
	if expiryDays <= 0 {
		expiryDays = config.OFFER_DEFAULT_EXPIRY_DAYS
	}

	offer, err := offers.Create(database.DB, offers.CreateInput{
		ArtworkID:  req.ArtworkID,
		BuyerID:    c.GetUint("user_id"),
		AmountUSD:  req.AmountUSD,
		Message:    req.Message,
		ExpiryDays: expiryDays,
		USDPerETH:  config.ETH_USD_RATE,
	})
	if err != nil {
		apierr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

// POST /offers/:id/accept
func AcceptOffer(c *gin.Context) {
	transition(c, offers.Accept)
}

// POST /offers/:id/reject
func RejectOffer(c *gin.Context) {
	transition(c, offers.Reject)
}

// POST /offers/:id/cancel
func CancelOffer(c *gin.Context) {
	transition(c, offers.Cancel)
}

// POST /offers/:id/fulfill — the buyer's explicit follow-up that turns
// an accepted offer into an order.
func FulfillOffer(c *gin.Context) {
	var req fulfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := orders.FulfillAcceptedOffer(database.DB, c.Param("id"), orders.PlaceOrderInput{
		UserID:        c.GetUint("user_id"),
		Items:         []orders.CartItem{{TxHash: req.TxHash}},
		PaymentMethod: req.PaymentMethod,
		Shipping:      req.Shipping,
		WalletAddress: req.WalletAddress,
		USDPerETH:     config.ETH_USD_RATE,
	})
	if err != nil {
		apierr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GET /offers?box=made|received
func ListOffers(c *gin.Context) {
	userID := c.GetUint("user_id")

	var (
		out []offers.Offer
		err error
	)
	if c.DefaultQuery("box", "made") == "received" {
		out, err = offers.ListBySeller(database.DB, userID)
	} else {
		out, err = offers.ListByBuyer(database.DB, userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load offers"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func transition(c *gin.Context, fn func(db *gorm.DB, offerID string, actingUserID uint) (*offers.Offer, error)) {
	offer, err := fn(database.DB, c.Param("id"), c.GetUint("user_id"))
	if err != nil {
		apierr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}
