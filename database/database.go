package database

import (
	"gallery-app/config"
	"gallery-app/internal/domain/audit"
	"gallery-app/internal/domain/catalog"
	"gallery-app/internal/domain/listings"
	"gallery-app/internal/domain/offers"
	"gallery-app/internal/domain/orders"
	"gallery-app/internal/domain/social"
	"gallery-app/internal/domain/users"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	DB = db

	if err := DB.AutoMigrate(
		// accounts
		&users.User{},

		// catalog
		&catalog.Artist{},
		&catalog.Collection{},
		&catalog.Artwork{},

		// marketplace
		&offers.Offer{},
		&listings.Listing{},
		&orders.Order{},

		// social + audit
		&social.WishlistItem{},
		&social.Follow{},
		&audit.Event{},
	); err != nil {
		logrus.WithError(err).Fatal("AutoMigrate error")
	}

	logrus.Info("Connected and migrated successfully")
}
