package db

import (
	"context"
)

const deleteExpiredIdempotencyKeysQuery = `
DELETE FROM idempotency_keys WHERE expires_at <= now()`

func (s *DB) DeleteExpiredIdempotencyKeys(ctx context.Context) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteExpiredIdempotencyKeys")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, deleteExpiredIdempotencyKeysQuery)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}
