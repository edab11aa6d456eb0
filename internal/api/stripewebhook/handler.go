package stripewebhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"gallery-app/config"
	"gallery-app/database"
	"gallery-app/internal/domain/audit"
	"gallery-app/internal/domain/market"
	"gallery-app/internal/domain/orders"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

// StripeWebhook settles card orders: a completed checkout session moves
// its orders pending → completed, an expired one releases them.
func StripeWebhook(c *gin.Context) {
	if config.STRIPE_WEBHOOK_SECRET == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		config.STRIPE_WEBHOOK_SECRET,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		logrus.WithError(err).Warn("stripe signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		handleSession(c, event, orders.PaymentCompleted)
	case "checkout.session.expired":
		handleSession(c, event, orders.PaymentCancelled)
	default:
		// Acknowledge unknown events to avoid retries.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func handleSession(c *gin.Context, event stripe.Event, target string) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
		return
	}

	for _, orderID := range sessionOrderIDs(&session) {
		if err := orders.SettlePayment(database.DB, orderID, target); err != nil {
			// Conflict means a replayed event; that's fine.
			if !errors.Is(err, market.ErrConflict) {
				logrus.WithError(err).WithField("order", orderID).Warn("webhook settlement failed")
			}
			continue
		}
		audit.Record(database.DB, 0, "order."+target, "order", orderID, "stripe session "+session.ID)
	}
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func sessionOrderIDs(session *stripe.CheckoutSession) []string {
	raw := session.Metadata["order_ids"]
	if raw == "" {
		return nil
	}
	var out []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
