package orders

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderNumberFormat(t *testing.T) {
	now := time.Now()
	n := NewOrderNumber(now)

	parts := strings.Split(n, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "MG", parts[0])
	assert.Len(t, parts[2], 12)
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2])
}

func TestNewOrderNumberUniqueness(t *testing.T) {
	const (
		workers = 10
		perGoro = 1000
	)
	now := time.Now()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	seen := make(map[string]struct{}, workers*perGoro)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoro; i++ {
				n := NewOrderNumber(now)
				mu.Lock()
				if _, dup := seen[n]; dup {
					t.Errorf("duplicate order number: %s", n)
				}
				seen[n] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perGoro)
}
