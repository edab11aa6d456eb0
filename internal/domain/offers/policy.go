package offers

/*
	Offer transition policy
	-----------------------
	Pure rules only: who may drive which transition, and what counts as
	expired. Persistence lives in engine.go.

	pending is the only live state. accepted / rejected / cancelled /
	expired are terminal. Expiry is lazy: nothing sweeps pending offers
	in the background, the deadline is applied whenever an offer is read
	or a transition is attempted.
*/

import (
	"time"

	"gallery-app/internal/domain/market"
)

func IsTerminal(status string) bool {
	switch status {
	case StatusAccepted, StatusRejected, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// PastExpiry reports whether a still-pending offer has outlived its deadline.
func PastExpiry(o *Offer, now time.Time) bool {
	return o.Status == StatusPending && now.After(o.ExpiresAt)
}

// EffectiveStatus is the display status: pending offers past their
// deadline read as expired even before the row is updated.
func EffectiveStatus(o *Offer, now time.Time) string {
	if PastExpiry(o, now) {
		return StatusExpired
	}
	return o.Status
}

// CanAccept checks the seller-driven accept transition.
func CanAccept(o *Offer, actingUserID uint, now time.Time) error {
	return canTransition(o, actingUserID, o.SellerID, now)
}

// CanReject checks the seller-driven reject transition.
func CanReject(o *Offer, actingUserID uint, now time.Time) error {
	return canTransition(o, actingUserID, o.SellerID, now)
}

// CanCancel checks the buyer-driven cancel transition.
func CanCancel(o *Offer, actingUserID uint, now time.Time) error {
	return canTransition(o, actingUserID, o.BuyerID, now)
}

func canTransition(o *Offer, actingUserID, allowedUserID uint, now time.Time) error {
	if actingUserID == 0 {
		return market.ErrUnauthenticated
	}
	if actingUserID != allowedUserID {
		return market.ErrUnauthorized
	}
	if o.Status != StatusPending || PastExpiry(o, now) {
		return market.ErrConflict
	}
	return nil
}
