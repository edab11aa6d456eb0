package catalog

import (
	"strings"

	"gorm.io/gorm"
)

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"

	defaultPerPage = 24
	maxPerPage     = 100
)

// BrowseParams are the public catalog filters. Zero values mean "no filter".
type BrowseParams struct {
	Medium   string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
	Page     int
	PerPage  int
}

// Normalize clamps paging and falls back to the default sort key.
func (p *BrowseParams) Normalize() {
	switch p.Sort {
	case SortNewest, SortPriceAsc, SortPriceDesc:
	default:
		p.Sort = SortNewest
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	p.Medium = strings.TrimSpace(p.Medium)
}

func (p BrowseParams) orderClause() string {
	switch p.Sort {
	case SortPriceAsc:
		return "price_usd ASC"
	case SortPriceDesc:
		return "price_usd DESC"
	default:
		return "created_at DESC"
	}
}

func publishedQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&Artwork{}).Where("status = ?", StatusPublished)
}

// ListPublished returns one page of published artworks plus the total
// count of rows matching the filters.
func ListPublished(db *gorm.DB, p BrowseParams) ([]Artwork, int64, error) {
	p.Normalize()

	q := publishedQuery(db)
	if p.Medium != "" {
		q = q.Where("LOWER(medium) LIKE ?", "%"+strings.ToLower(p.Medium)+"%")
	}
	if p.MinPrice != nil {
		q = q.Where("price_usd >= ?", *p.MinPrice)
	}
	if p.MaxPrice != nil {
		q = q.Where("price_usd <= ?", *p.MaxPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []Artwork
	err := q.Preload("Artist").
		Order(p.orderClause()).
		Limit(p.PerPage).
		Offset((p.Page - 1) * p.PerPage).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
