package db

import (
	"context"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createDeliveryLogQuery = `
INSERT INTO delivery_logs (id, notification_id, channel, status, error_message, sent_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// CreateDeliveryLogs writes all attempt rows for one delivery in a single batch.
func (s *DB) CreateDeliveryLogs(ctx context.Context, logs []entity.DeliveryLog) (err error) {
	ctx, span := s.startSpan(ctx, "CreateDeliveryLogs")
	defer func() { s.endSpan(span, err) }()

	if len(logs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, l := range logs {
		errMsg := pgtype.Text{String: l.ErrorMessage, Valid: l.ErrorMessage != ""}
		batch.Queue(createDeliveryLogQuery, l.ID, l.NotificationID, l.Channel, l.Status, errMsg, l.SentAt)
	}

	results := s.conn.SendBatch(ctx, batch)
	defer func() {
		if cErr := results.Close(); cErr != nil && err == nil {
			err = s.mapError(cErr)
		}
	}()

	for range logs {
		if _, err = results.Exec(); err != nil {
			return s.mapError(err)
		}
	}

	return nil
}

// CreateDeliveryLog records a single provider-reported attempt.
func (s *DB) CreateDeliveryLog(ctx context.Context, l entity.DeliveryLog) (err error) {
	ctx, span := s.startSpan(ctx, "CreateDeliveryLog")
	defer func() { s.endSpan(span, err) }()

	errMsg := pgtype.Text{String: l.ErrorMessage, Valid: l.ErrorMessage != ""}
	_, err = s.conn.Exec(ctx, createDeliveryLogQuery, l.ID, l.NotificationID, l.Channel, l.Status, errMsg, l.SentAt)
	return s.mapError(err)
}
