package chain

import (
	"context"
	"time"

	"gallery-app/config"
	"gallery-app/internal/domain/audit"
	"gallery-app/internal/domain/orders"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Orders that never confirm are cancelled after this long so the
// reserved edition unit goes back on sale.
const confirmationDeadline = 24 * time.Hour

// StartConfirmationLoop polls the chain for crypto orders stuck in
// processing and settles them. This is the only background worker the
// service owns; offer expiry stays lazy on the read path.
func StartConfirmationLoop(ctx context.Context, db *gorm.DB, client *Client, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				processBatch(ctx, db, client)
			}
		}
	}()
}

func processBatch(ctx context.Context, db *gorm.DB, client *Client) {
	var pending []orders.Order
	err := db.Where("payment_status = ? AND payment_method = ?", orders.PaymentProcessing, orders.MethodCrypto).
		Order("created_at ASC").
		Limit(50).
		Find(&pending).Error
	if err != nil {
		logrus.WithError(err).Warn("confirmation batch query failed")
		return
	}

	for i := range pending {
		o := &pending[i]
		log := logrus.WithFields(logrus.Fields{"order": o.OrderNumber, "tx": deref(o.TransactionHash)})

		if o.TransactionHash == nil || *o.TransactionHash == "" {
			settle(db, o, orders.PaymentCancelled, "no transaction hash")
			continue
		}

		params := VerifyParams{
			TxHash:           *o.TransactionHash,
			Recipient:        config.GALLERY_WALLET_ADDRESS,
			MinConfirmations: config.CHAIN_MIN_CONFIRMATIONS,
		}
		if o.AmountCrypto != nil {
			params.MinWei = WeiFromETH(*o.AmountCrypto)
		}

		result, err := client.VerifyPayment(ctx, params)
		if err != nil {
			log.WithError(err).Warn("chain verification failed, will retry")
			continue
		}

		switch {
		case result.Confirmed:
			settle(db, o, orders.PaymentCompleted, "confirmed on chain")
		case result.Failed:
			settle(db, o, orders.PaymentCancelled, result.Reason)
		case time.Since(o.CreatedAt) > confirmationDeadline:
			settle(db, o, orders.PaymentCancelled, "confirmation timed out")
		}
	}
}

func settle(db *gorm.DB, o *orders.Order, target, reason string) {
	if err := orders.SettlePayment(db, o.ID, target); err != nil {
		logrus.WithError(err).WithField("order", o.OrderNumber).Warn("settlement failed")
		return
	}
	audit.Record(db, o.UserID, "order."+target, "order", o.ID, reason)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
