package catalog

import "gallery-app/internal/domain/catalog"

type BrowseResponse struct {
	Items   []catalog.Artwork `json:"items"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
}

type ArtworkResponse struct {
	catalog.Artwork
	InWishlist bool `json:"in_wishlist"`
}

type ArtistResponse struct {
	catalog.Artist
	Following bool              `json:"following"`
	Works     []catalog.Artwork `json:"works,omitempty"`
}

type CreateArtworkRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Medium       string   `json:"medium"`
	Year         string   `json:"year"`
	SizeCM       string   `json:"size_cm"`
	ImageURL     string   `json:"image_url"`
	PriceUSD     *float64 `json:"price_usd"`
	PriceETH     *float64 `json:"price_eth"`
	EditionTotal int      `json:"edition_total"`
	CollectionID *string  `json:"collection_id"`
}

type UpdateArtworkRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Medium      *string  `json:"medium"`
	Year        *string  `json:"year"`
	SizeCM      *string  `json:"size_cm"`
	ImageURL    *string  `json:"image_url"`
	PriceUSD    *float64 `json:"price_usd"`
	PriceETH    *float64 `json:"price_eth"`
}

type CreateCollectionRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	CoverImageURL string `json:"cover_image_url"`
}
