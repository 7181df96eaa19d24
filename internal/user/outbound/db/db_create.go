package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heralddev/herald/internal/user/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createUserQuery = `
INSERT INTO users (id, email, full_name, phone_number, push_token)
VALUES ($1, $2, $3, $4, $5)`

const createPreferencesQuery = `
INSERT INTO user_preferences (user_id, allow_email, allow_sms, allow_push)
VALUES ($1, $2, $3, $4)`

// CreateUserWithPreferences inserts the user row and its preference row in
// one transaction so a user never exists without preferences.
func (s *DB) CreateUserWithPreferences(ctx context.Context, user entity.CreateUser, prefs entity.Preferences) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUserWithPreferences")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	phone := pgtype.Text{String: user.PhoneNumber, Valid: user.PhoneNumber != ""}
	token := pgtype.Text{String: user.PushToken, Valid: user.PushToken != ""}
	if _, err = tx.Exec(ctx, createUserQuery, user.ID, user.Email, user.FullName, phone, token); err != nil {
		return s.mapError(err)
	}

	if _, err = tx.Exec(ctx, createPreferencesQuery, user.ID, prefs.AllowEmail, prefs.AllowSMS, prefs.AllowPush); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
