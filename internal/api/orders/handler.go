package orders

import (
	"net/http"
	"strings"

	"gallery-app/config"
	"gallery-app/database"
	"gallery-app/internal/api/apierr"
	"gallery-app/internal/domain/orders"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

type checkoutItem struct {
	ArtworkID string `json:"artwork_id" binding:"required"`
	TxHash    string `json:"tx_hash"`
}

type checkoutRequest struct {
	Items         []checkoutItem         `json:"items" binding:"required"`
	PaymentMethod string                 `json:"payment_method" binding:"required"`
	Shipping      orders.ShippingAddress `json:"shipping"`
	WalletAddress string                 `json:"wallet_address"`
}

type checkoutResponse struct {
	Results     []orders.ItemResult `json:"results"`
	CheckoutURL string              `json:"checkout_url,omitempty"`
}

// ------------------------------
// POST /orders  (multi-item checkout)
// ------------------------------
// Items settle independently: the response carries one result per cart
// item and an earlier failure never rolls back a later success.
func Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]orders.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, orders.CartItem{ArtworkID: it.ArtworkID, TxHash: it.TxHash})
	}

	results, err := orders.PlaceOrder(database.DB, orders.PlaceOrderInput{
		UserID:        c.GetUint("user_id"),
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		Shipping:      req.Shipping,
		WalletAddress: req.WalletAddress,
		USDPerETH:     config.ETH_USD_RATE,
	})
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	resp := checkoutResponse{Results: results}

	// Card orders go through a hosted checkout session; without Stripe
	// configured they simply stay pending.
	if req.PaymentMethod == orders.MethodCard && config.STRIPE_SECRET_KEY != "" {
		url, err := createCardSession(results)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create checkout session", "results": results})
			return
		}
		resp.CheckoutURL = url
	}

	c.JSON(http.StatusCreated, resp)
}

func createCardSession(results []orders.ItemResult) (string, error) {
	stripe.Key = config.STRIPE_SECRET_KEY

	var (
		lineItems []*stripe.CheckoutSessionLineItemParams
		orderIDs  []string
	)
	for _, r := range results {
		if r.Order == nil {
			continue
		}
		orderIDs = append(orderIDs, r.Order.ID)
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("usd"),
				UnitAmount: stripe.Int64(int64(r.Order.AmountUSD * 100)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(r.Order.OrderNumber),
				},
			},
		})
	}
	if len(lineItems) == 0 {
		return "", nil
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/orders?paid=1"),
		CancelURL:  stripe.String(config.APP_URL + "/orders?canceled=1"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		Metadata:   map[string]string{"order_ids": strings.Join(orderIDs, ",")},
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		return "", err
	}

	// Remember the session so the webhook can settle these orders.
	if err := database.DB.Model(&orders.Order{}).
		Where("id IN ?", orderIDs).
		Update("stripe_session_id", s.ID).Error; err != nil {
		return "", err
	}
	return s.URL, nil
}

// GET /orders
func ListMyOrders(c *gin.Context) {
	out, err := orders.ListByUser(database.DB, c.GetUint("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /orders/:id
func GetOrder(c *gin.Context) {
	order, err := orders.Get(database.DB, c.Param("id"), c.GetUint("user_id"), c.GetString("role") == "admin")
	if err != nil {
		apierr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
