package listings

import (
	"net/http"
	"strconv"
	"time"

	"gallery-app/database"
	"gallery-app/internal/api/apierr"
	"gallery-app/internal/domain/listings"

	"github.com/gin-gonic/gin"
)

type createListingRequest struct {
	ArtworkID     string   `json:"artwork_id" binding:"required"`
	ListingType   string   `json:"listing_type" binding:"required"`
	PriceUSD      float64  `json:"price_usd" binding:"required"`
	PriceETH      *float64 `json:"price_eth"`
	MinimumBidUSD *float64 `json:"minimum_bid_usd"`
	AuctionEndAt  *string  `json:"auction_end_at"`
}

// POST /listings
func CreateListing(c *gin.Context) {
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var auctionEndAt *time.Time
	if req.AuctionEndAt != nil {
		t, err := time.Parse(time.RFC3339, *req.AuctionEndAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "auction_end_at must be RFC3339"})
			return
		}
		auctionEndAt = &t
	}

	listing, err := listings.Create(database.DB, listings.CreateInput{
		ArtworkID:     req.ArtworkID,
		SellerID:      c.GetUint("user_id"),
		ListingType:   req.ListingType,
		PriceUSD:      req.PriceUSD,
		PriceETH:      req.PriceETH,
		MinimumBidUSD: req.MinimumBidUSD,
		AuctionEndAt:  auctionEndAt,
	})
	if err != nil {
		apierr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// PATCH /listings/:id  (flip is_active)
func ToggleListing(c *gin.Context) {
	listing, err := listings.ToggleActive(database.DB, c.Param("id"), c.GetUint("user_id"))
	if err != nil {
		apierr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// DELETE /listings/:id
func DeleteListing(c *gin.Context) {
	if err := listings.Delete(database.DB, c.Param("id"), c.GetUint("user_id")); err != nil {
		apierr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /listings  (active marketplace listings, public)
func BrowseListings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("per_page", "24"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	out, err := listings.ListActive(database.DB, limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listings"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /my/listings
func ListMyListings(c *gin.Context) {
	out, err := listings.ListBySeller(database.DB, c.GetUint("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listings"})
		return
	}
	c.JSON(http.StatusOK, out)
}
