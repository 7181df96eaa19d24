package db

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/goerror"
	"github.com/heralddev/herald/internal/pkg/valueobject"
	"github.com/jackc/pgx/v5"
)

// notificationSnapshot is the cached response stored on the idempotency row.
type notificationSnapshot struct {
	ID           string              `json:"id"`
	UserID       string              `json:"userId"`
	ExternalID   string              `json:"externalId"`
	TemplateName string              `json:"templateName"`
	Content      valueobject.JSONMap `json:"content"`
	Priority     string              `json:"priority"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func snapshotOf(n *entity.Notification) notificationSnapshot {
	return notificationSnapshot{
		ID:           n.ID,
		UserID:       n.UserID,
		ExternalID:   n.ExternalID,
		TemplateName: n.TemplateName,
		Content:      n.Content,
		Priority:     n.Priority.String(),
		Status:       n.Status.String(),
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

func (snap notificationSnapshot) toEntity() *entity.Notification {
	return &entity.Notification{
		ID:           snap.ID,
		UserID:       snap.UserID,
		ExternalID:   snap.ExternalID,
		TemplateName: snap.TemplateName,
		Content:      snap.Content,
		Priority:     entity.PriorityFromString(snap.Priority),
		Status:       entity.StatusFromString(snap.Status),
		CreatedAt:    snap.CreatedAt,
		UpdatedAt:    snap.UpdatedAt,
	}
}

const getIdempotencyKeyQuery = `
SELECT response_status, response_body
FROM idempotency_keys
WHERE key = $1 AND expires_at > now()
FOR UPDATE`

// The claim reclaims an expired leftover row in place, so an unswept key
// never blocks a fresh request. A conflicting live row updates nothing.
const claimIdempotencyKeyQuery = `
INSERT INTO idempotency_keys (key, expires_at, created_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE
SET expires_at = EXCLUDED.expires_at, response_status = NULL, response_body = NULL, created_at = now()
WHERE idempotency_keys.expires_at <= now()`

const cacheIdempotencyResponseQuery = `
UPDATE idempotency_keys SET response_status = $2, response_body = $3 WHERE key = $1`

const getNotificationByUserExternalQuery = `
SELECT id, user_id, external_id, template_name, content, priority, status, created_at, updated_at
FROM notifications
WHERE user_id = $1 AND external_id = $2`

const createNotificationQuery = `
INSERT INTO notifications (id, user_id, external_id, template_name, content, priority, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
RETURNING created_at, updated_at`

// CreateWithIdempotency runs the whole idempotent creation protocol in one
// transaction. It returns the notification, whether this call created it, and
// goerror.ErrConflict when the key is claimed by an in-flight request.
//
// Expired keys are filtered on read, so a stale claim or cached response never
// blocks a fresh request.
func (s *DB) CreateWithIdempotency(
	ctx context.Context,
	key string,
	keyExpiresAt time.Time,
	data entity.CreateNotification,
) (_ *entity.Notification, _ bool, err error) {
	ctx, span := s.startSpan(ctx, "CreateWithIdempotency")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	var respStatus *int32
	var respBody []byte
	err = tx.QueryRow(ctx, getIdempotencyKeyQuery, key).Scan(&respStatus, &respBody)
	switch {
	case err == nil && respBody != nil:
		// Replay: the key already completed, return the cached notification.
		var snap notificationSnapshot
		if err = json.Unmarshal(respBody, &snap); err != nil {
			return nil, false, err
		}
		if err = tx.Commit(ctx); err != nil {
			return nil, false, err
		}
		return snap.toEntity(), false, nil

	case err == nil:
		// Claimed but not completed: another request holds this key.
		return nil, false, goerror.ErrConflict

	case errors.Is(err, pgx.ErrNoRows):
		tag, cErr := tx.Exec(ctx, claimIdempotencyKeyQuery, key, keyExpiresAt)
		if cErr != nil {
			return nil, false, s.mapError(cErr)
		}
		if tag.RowsAffected() == 0 {
			// A racer claimed the key between our read and insert.
			return nil, false, goerror.ErrConflict
		}

	default:
		return nil, false, s.mapError(err)
	}

	notif, created, err := s.findOrCreateNotification(ctx, tx, data)
	if err != nil {
		return nil, false, err
	}

	body, err := json.Marshal(snapshotOf(notif))
	if err != nil {
		return nil, false, err
	}
	if _, err = tx.Exec(ctx, cacheIdempotencyResponseQuery, key, int32(http.StatusCreated), body); err != nil {
		return nil, false, s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, false, s.mapError(err)
	}

	return notif, created, nil
}

func (s *DB) findOrCreateNotification(ctx context.Context, tx pgx.Tx, data entity.CreateNotification) (*entity.Notification, bool, error) {
	existing, err := scanNotificationRow(tx.QueryRow(ctx, getNotificationByUserExternalQuery, data.UserID, data.ExternalID))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, s.mapError(err)
	}

	n := &entity.Notification{
		ID:           data.ID,
		UserID:       data.UserID,
		ExternalID:   data.ExternalID,
		TemplateName: data.TemplateName,
		Content:      data.Content,
		Priority:     data.Priority,
		Status:       entity.StatusPending,
	}

	// The insert runs under a savepoint so a unique violation does not abort
	// the surrounding transaction.
	sp, err := tx.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	err = sp.QueryRow(ctx, createNotificationQuery,
		n.ID, n.UserID, n.ExternalID, n.TemplateName, n.Content, n.Priority, n.Status,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
	if err == nil {
		if err = sp.Commit(ctx); err != nil {
			return nil, false, err
		}
		return n, true, nil
	}
	if rErr := sp.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
		return nil, false, rErr
	}

	// A concurrent request inserted the same (user, external) pair first.
	// Treat it as the existing-notification path instead of surfacing the
	// unique violation.
	if errors.Is(s.mapError(err), goerror.ErrConflict) {
		existing, err = scanNotificationRow(tx.QueryRow(ctx, getNotificationByUserExternalQuery, data.UserID, data.ExternalID))
		if err != nil {
			return nil, false, s.mapError(err)
		}
		return existing, false, nil
	}

	return nil, false, s.mapError(err)
}

func scanNotificationRow(row pgx.Row) (*entity.Notification, error) {
	var n entity.Notification
	err := row.Scan(
		&n.ID, &n.UserID, &n.ExternalID, &n.TemplateName, &n.Content,
		&n.Priority, &n.Status, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
