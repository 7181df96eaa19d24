package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/heralddev/herald/internal/user/entity"
)

const getUserByIDQuery = `
SELECT id, email, full_name, phone_number, push_token, created_at, updated_at
FROM users
WHERE id = $1`

func (s *DB) GetUserByID(ctx context.Context, id string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	var u entity.User
	var phone, token pgtype.Text
	err = s.conn.QueryRow(ctx, getUserByIDQuery, id).Scan(
		&u.ID, &u.Email, &u.FullName, &phone, &token, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	u.PhoneNumber = phone.String
	u.PushToken = token.String

	return &u, nil
}

const getPreferencesQuery = `
SELECT user_id, allow_email, allow_sms, allow_push, updated_at
FROM user_preferences
WHERE user_id = $1`

func (s *DB) GetPreferences(ctx context.Context, userID string) (_ *entity.Preferences, err error) {
	ctx, span := s.startSpan(ctx, "GetPreferences")
	defer func() { s.endSpan(span, err) }()

	var p entity.Preferences
	err = s.conn.QueryRow(ctx, getPreferencesQuery, userID).Scan(
		&p.UserID, &p.AllowEmail, &p.AllowSMS, &p.AllowPush, &p.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &p, nil
}
