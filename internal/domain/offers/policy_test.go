package offers

import (
	"testing"
	"time"

	"gallery-app/internal/domain/market"

	"github.com/stretchr/testify/assert"
)

func pendingOffer(expiresIn time.Duration) *Offer {
	return &Offer{
		ID:        "offer-1",
		BuyerID:   10,
		SellerID:  20,
		Status:    StatusPending,
		ExpiresAt: time.Now().Add(expiresIn),
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusPending))
	for _, s := range []string{StatusAccepted, StatusRejected, StatusCancelled, StatusExpired} {
		assert.True(t, IsTerminal(s), s)
	}
}

func TestEffectiveStatusLazyExpiry(t *testing.T) {
	now := time.Now()

	live := pendingOffer(time.Hour)
	assert.Equal(t, StatusPending, EffectiveStatus(live, now))

	stale := pendingOffer(-time.Hour)
	assert.Equal(t, StatusExpired, EffectiveStatus(stale, now))

	// Terminal states are unaffected by the deadline.
	stale.Status = StatusRejected
	assert.Equal(t, StatusRejected, EffectiveStatus(stale, now))
}

func TestCanAccept(t *testing.T) {
	now := time.Now()
	o := pendingOffer(time.Hour)

	assert.NoError(t, CanAccept(o, 20, now))
	assert.ErrorIs(t, CanAccept(o, 0, now), market.ErrUnauthenticated)
	assert.ErrorIs(t, CanAccept(o, 10, now), market.ErrUnauthorized, "buyer cannot accept")
	assert.ErrorIs(t, CanAccept(o, 99, now), market.ErrUnauthorized)

	o.Status = StatusAccepted
	assert.ErrorIs(t, CanAccept(o, 20, now), market.ErrConflict, "terminal offers never transition")

	expired := pendingOffer(-time.Minute)
	assert.ErrorIs(t, CanAccept(expired, 20, now), market.ErrConflict)
}

func TestCanCancelIsBuyerDriven(t *testing.T) {
	now := time.Now()
	o := pendingOffer(time.Hour)

	assert.NoError(t, CanCancel(o, 10, now))
	assert.ErrorIs(t, CanCancel(o, 20, now), market.ErrUnauthorized, "seller cannot cancel")
}
