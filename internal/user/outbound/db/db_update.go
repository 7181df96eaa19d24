package db

import (
	"context"

	"github.com/heralddev/herald/internal/user/entity"
	"github.com/heralddev/herald/internal/pkg/goerror"
)

const updatePreferencesQuery = `
UPDATE user_preferences
SET allow_email = $2, allow_sms = $3, allow_push = $4, updated_at = now()
WHERE user_id = $1`

func (s *DB) UpdatePreferences(ctx context.Context, p entity.Preferences) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePreferences")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, updatePreferencesQuery, p.UserID, p.AllowEmail, p.AllowSMS, p.AllowPush)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
