package catalog_test

import (
	"sync"
	"testing"

	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/market"
	"gallery-app/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	return testdb.Open(t, &catalog.Artist{}, &catalog.Collection{}, &catalog.Artwork{})
}

func seedArtwork(t *testing.T, db *gorm.DB, editions int, status string) *catalog.Artwork {
	t.Helper()
	price := 1000.0
	a := catalog.Artwork{
		ArtistID:         "11111111-1111-1111-1111-111111111111",
		Title:            "Test Piece",
		Medium:           "Oil on canvas",
		PriceUSD:         &price,
		EditionTotal:     editions,
		EditionAvailable: editions,
		Status:           status,
	}
	require.NoError(t, db.Create(&a).Error)
	return &a
}

func TestDecrementAvailabilityRoundTrip(t *testing.T) {
	db := openDB(t)
	a := seedArtwork(t, db, 5, catalog.StatusPublished)

	for i := 0; i < 5; i++ {
		require.NoError(t, catalog.DecrementAvailability(db, a.ID))
	}

	got, err := catalog.GetArtwork(db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.EditionAvailable)
	assert.Equal(t, catalog.StatusSold, got.Status)

	err = catalog.DecrementAvailability(db, a.ID)
	assert.ErrorIs(t, err, market.ErrOutOfStock)
}

func TestDecrementAvailabilityUnknownArtwork(t *testing.T) {
	db := openDB(t)

	err := catalog.DecrementAvailability(db, "99999999-9999-9999-9999-999999999999")
	assert.ErrorIs(t, err, market.ErrNotFound)
}

func TestDecrementAvailabilityConcurrentLastUnit(t *testing.T) {
	db := openDB(t)
	a := seedArtwork(t, db, 1, catalog.StatusPublished)

	const buyers = 10
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
			err := catalog.DecrementAvailability(db, a.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case err == market.ErrOutOfStock:
				outOfSold++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "exactly one buyer gets the last unit")
	assert.Equal(t, buyers-1, outOfSold)

	got, err := catalog.GetArtwork(db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.EditionAvailable)
}

func TestIncrementAvailabilityNeverExceedsTotal(t *testing.T) {
	db := openDB(t)
	a := seedArtwork(t, db, 2, catalog.StatusPublished)

	require.NoError(t, catalog.DecrementAvailability(db, a.ID))
	require.NoError(t, catalog.IncrementAvailability(db, a.ID))

	err := catalog.IncrementAvailability(db, a.ID)
	assert.ErrorIs(t, err, market.ErrConflict)

	got, err := catalog.GetArtwork(db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.EditionAvailable)
}

func TestIncrementAvailabilityRevivesSoldArtwork(t *testing.T) {
	db := openDB(t)
	a := seedArtwork(t, db, 1, catalog.StatusPublished)

	require.NoError(t, catalog.DecrementAvailability(db, a.ID))
	require.NoError(t, catalog.IncrementAvailability(db, a.ID))

	got, err := catalog.GetArtwork(db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusPublished, got.Status)
	assert.Equal(t, 1, got.EditionAvailable)
}

func TestListPublishedFiltersAndSort(t *testing.T) {
	db := openDB(t)

	prices := []float64{300, 100, 200}
	for _, p := range prices {
		price := p
		a := catalog.Artwork{
			ArtistID:         "11111111-1111-1111-1111-111111111111",
			Title:            "Piece",
			Medium:           "Oil on canvas",
			PriceUSD:         &price,
			EditionTotal:     1,
			EditionAvailable: 1,
			Status:           catalog.StatusPublished,
		}
		require.NoError(t, db.Create(&a).Error)
	}
	draft := seedArtwork(t, db, 1, catalog.StatusDraft)
	_ = draft

	items, total, err := catalog.ListPublished(db, catalog.BrowseParams{Sort: catalog.SortPriceAsc})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total, "drafts are not browsable")
	require.Len(t, items, 3)
	assert.Equal(t, 100.0, *items[0].PriceUSD)
	assert.Equal(t, 300.0, *items[2].PriceUSD)

	min := 150.0
	items, total, err = catalog.ListPublished(db, catalog.BrowseParams{MinPrice: &min, Sort: catalog.SortPriceDesc})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, 300.0, *items[0].PriceUSD)

	items, total, err = catalog.ListPublished(db, catalog.BrowseParams{Medium: "OIL"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total, "medium filter is a case-insensitive substring match")
	_ = items
}

func TestBrowseParamsNormalize(t *testing.T) {
	p := catalog.BrowseParams{Sort: "bogus", Page: -3, PerPage: 100000}
	p.Normalize()

	assert.Equal(t, catalog.SortNewest, p.Sort)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)
}
