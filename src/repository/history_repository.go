package repository

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"orderdesk/src/model"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// HistoryRepository is the append-only store of execution outcomes.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	logger.WithField("component", "HistoryRepository").
		Info("Creating new HistoryRepository")

	return &HistoryRepository{db: db}
}

// Append inserts one entry. The entry is updated with its generated ID.
func (r *HistoryRepository) Append(ctx context.Context, entry *model.OrderHistoryEntry) error {
	logger.WithFields(map[string]interface{}{
		"repo":       "HistoryRepository",
		"op":         "Append",
		"request_id": entry.RequestID,
		"symbol":     entry.Symbol,
		"status":     entry.Status,
	}).Debug("Appending history entry")

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "HistoryRepository",
			"op":   "Append",
		}).WithError(err).Error("Failed to append history entry")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":     "HistoryRepository",
		"op":       "Append",
		"entry_id": entry.ID,
	}).Info("History entry appended")

	return nil
}

// List returns the newest entries first. A non-positive limit means the
// default; limits above MaxHistoryLimit are capped.
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]model.OrderHistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	var entries []model.OrderHistoryEntry
	err := r.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":  "HistoryRepository",
			"op":    "List",
			"limit": limit,
		}).WithError(err).Error("Failed to list history entries")

		return nil, err
	}

	return entries, nil
}
