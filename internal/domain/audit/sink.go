// Package audit is the append-only who-did-what-when sink behind every
// engine transition. Best effort: a failed insert is logged, never
// propagated, so it can't fail the transition it describes.
package audit

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Event struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActorID    uint      `gorm:"index" json:"actor_id"`
	Action     string    `gorm:"not null;index" json:"action"`
	EntityType string    `gorm:"type:varchar(30);not null" json:"entity_type"`
	EntityID   string    `gorm:"index" json:"entity_id"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func Record(db *gorm.DB, actorID uint, action, entityType, entityID, detail string) {
	ev := Event{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}
	if err := db.Create(&ev).Error; err != nil {
		logrus.WithError(err).WithField("action", action).Warn("audit insert failed")
		return
	}
	logrus.WithFields(logrus.Fields{
		"actor":  actorID,
		"action": action,
		"entity": entityType + "/" + entityID,
	}).Info("audit")
}

// ListForActor returns the most recent events initiated by one user.
func ListForActor(db *gorm.DB, actorID uint, limit int) ([]Event, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var events []Event
	err := db.Where("actor_id = ?", actorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// ListRecent returns the most recent events across all actors (admin view).
func ListRecent(db *gorm.DB, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var events []Event
	err := db.Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}
