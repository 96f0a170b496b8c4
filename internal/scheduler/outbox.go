package scheduler

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type workEvent struct {
	ID        snowflake.ID
	OwnerID   snowflake.ID
	EventType string
}

// dispatchOnce claims a batch of unpublished events and marks them
// delivered. Concurrent instances skip each other's claims.
func (s *Scheduler) dispatchOnce(ctx context.Context) (int, error) {
	var dispatched int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := `SELECT id, owner_id, event_type
			 FROM invoice_events
			 WHERE published = false
			 ORDER BY id
			 LIMIT ?`
		if tx.Dialector.Name() == "postgres" {
			query = `SELECT id, owner_id, event_type
			 FROM invoice_events
			 WHERE published = false
			 ORDER BY id
			 FOR UPDATE SKIP LOCKED
			 LIMIT ?`
		}

		var batch []workEvent
		if err := tx.Raw(query, s.cfg.BatchSize).Scan(&batch).Error; err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		ids := make([]snowflake.ID, 0, len(batch))
		for _, event := range batch {
			ids = append(ids, event.ID)
		}
		if err := tx.Exec(
			`UPDATE invoice_events SET published = true WHERE id IN ?`, ids,
		).Error; err != nil {
			return err
		}

		dispatched = len(batch)
		return nil
	})
	return dispatched, err
}

// pruneOnce drops delivered events older than the retention window.
func (s *Scheduler) pruneOnce(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-s.cfg.Retention)
	return s.db.WithContext(ctx).Exec(
		`DELETE FROM invoice_events WHERE published = true AND created_at < ?`, cutoff,
	).Error
}
