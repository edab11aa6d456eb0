package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber builds a human-readable order number:
// MG-<unix millis>-<12 hex chars>. The random suffix makes collisions
// negligible; the unique index on order_number is the hard guarantee.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	return fmt.Sprintf("MG-%d-%s", now.UnixMilli(), suffix)
}
