package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusSold      = "sold"
	StatusArchived  = "archived"
)

type Artist struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID *uint  `gorm:"uniqueIndex:idx_artists_user" json:"-"`

	Name      string `gorm:"not null" json:"name"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `gorm:"column:avatar_url" json:"avatar_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Artist) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type Collection struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	ArtistID string `gorm:"type:uuid;not null;index" json:"artist_id"`

	Title         string `gorm:"not null" json:"title"`
	Description   string `json:"description,omitempty"`
	CoverImageURL string `gorm:"column:cover_image_url" json:"cover_image_url,omitempty"`

	Items []Artwork `gorm:"foreignKey:CollectionID" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Artwork is a unique sellable unit, possibly limited-edition.
// EditionAvailable only ever moves down through DecrementAvailability
// (plus the compensation path in the order engine).
type Artwork struct {
	ID       string  `gorm:"type:uuid;primaryKey" json:"id"`
	ArtistID string  `gorm:"type:uuid;not null;index" json:"artist_id"`
	Artist   *Artist `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`

	CollectionID   *string `gorm:"type:uuid;index" json:"collection_id,omitempty"`
	CurrentOwnerID *uint   `gorm:"index" json:"current_owner_id,omitempty"`

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description,omitempty"`
	Medium      string `gorm:"index" json:"medium,omitempty"`
	Year        string `json:"year,omitempty"`
	SizeCM      string `gorm:"column:size_cm" json:"size_cm,omitempty"`
	ImageURL    string `gorm:"column:image_url" json:"image_url,omitempty"`

	PriceUSD *float64 `gorm:"column:price_usd" json:"price_usd,omitempty"`
	PriceETH *float64 `gorm:"column:price_eth" json:"price_eth,omitempty"`

	EditionTotal     int `gorm:"not null;default:1" json:"edition_total"`
	EditionAvailable int `gorm:"not null;default:1" json:"edition_available"`

	Status string `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Artwork) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
