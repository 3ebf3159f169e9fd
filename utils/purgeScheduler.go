package utils

import (
	"log"
	"time"

	"lms/config"
	"lms/models/catalog"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartPurgeScheduler runs the tombstone reaper daily. Cascade deletes only
// flag rows; this job hard-deletes rows that have been flagged longer than
// the retention window.
func StartPurgeScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@daily", func() {
		PurgeSoftDeleted(db, config.AppConfig.PurgeRetentionDays)
	})
	if err != nil {
		log.Printf("Error scheduling purge job: %v", err)
		return c
	}

	c.Start()
	return c
}

// PurgeSoftDeleted hard-deletes soft-deleted catalog rows older than the
// retention window, leaves first so no orphan can reappear if a batch fails
// midway.
func PurgeSoftDeleted(db *gorm.DB, retentionDays int) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	targets := []interface{}{
		&catalog.ContentItem{},
		&catalog.Chapter{},
		&catalog.Subject{},
		&catalog.Batch{},
		&catalog.EnrollmentRequest{},
	}

	for _, model := range targets {
		result := db.Unscoped().
			Where("is_deleted = ? AND updated_at < ?", true, cutoff).
			Delete(model)
		if result.Error != nil {
			log.Printf("Purge failed for %T: %v", model, result.Error)
			continue
		}
		if result.RowsAffected > 0 {
			log.Printf("Purged %d rows of %T", result.RowsAffected, model)
		}
	}
}
