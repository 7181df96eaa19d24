package db

import (
	"context"

	"github.com/heralddev/herald/internal/notification/entity"
)

const updateNotificationStatusQuery = `
UPDATE notifications
SET status = $1, updated_at = now()
WHERE id = $2 AND status = $3`

// UpdateNotificationStatus moves a notification from one status to another.
// The guard on the old status makes the transition lose cleanly when another
// writer already moved the row to a terminal state.
func (s *DB) UpdateNotificationStatus(ctx context.Context, id string, from, to entity.Status) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UpdateNotificationStatus")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, updateNotificationStatusQuery, to, id, from)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}
