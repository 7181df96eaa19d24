package db

import (
	"context"
	"time"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/jackc/pgx/v5/pgtype"
)

const getNotificationByIDQuery = `
SELECT id, user_id, external_id, template_name, content, priority, status, created_at, updated_at
FROM notifications
WHERE id = $1`

func (s *DB) GetNotificationByID(ctx context.Context, id string) (_ *entity.Notification, err error) {
	ctx, span := s.startSpan(ctx, "GetNotificationByID")
	defer func() { s.endSpan(span, err) }()

	var n entity.Notification
	err = s.conn.QueryRow(ctx, getNotificationByIDQuery, id).Scan(
		&n.ID, &n.UserID, &n.ExternalID, &n.TemplateName, &n.Content,
		&n.Priority, &n.Status, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &n, nil
}

const listNotificationDetailsQuery = `
SELECT n.id, n.user_id, n.external_id, n.template_name, n.content, n.priority, n.status,
       n.created_at, n.updated_at, u.email
FROM notifications n
JOIN users u ON u.id = n.user_id
ORDER BY n.created_at DESC
LIMIT $1 OFFSET $2`

func (s *DB) ListNotificationDetails(ctx context.Context, limit, offset int32) (_ []entity.NotificationDetail, err error) {
	ctx, span := s.startSpan(ctx, "ListNotificationDetails")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, listNotificationDetailsQuery, limit, offset)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	items := make([]entity.NotificationDetail, 0)
	for rows.Next() {
		var d entity.NotificationDetail
		if err = rows.Scan(
			&d.ID, &d.UserID, &d.ExternalID, &d.TemplateName, &d.Content,
			&d.Priority, &d.Status, &d.CreatedAt, &d.UpdatedAt, &d.UserEmail,
		); err != nil {
			return nil, s.mapError(err)
		}
		items = append(items, d)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

const listDeliveryLogsQuery = `
SELECT id, notification_id, channel, status, error_message, sent_at
FROM delivery_logs
WHERE notification_id = $1
ORDER BY sent_at ASC`

func (s *DB) ListDeliveryLogs(ctx context.Context, notificationID string) (_ []entity.DeliveryLog, err error) {
	ctx, span := s.startSpan(ctx, "ListDeliveryLogs")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, listDeliveryLogsQuery, notificationID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	logs := make([]entity.DeliveryLog, 0)
	for rows.Next() {
		var l entity.DeliveryLog
		var errMsg pgtype.Text
		if err = rows.Scan(&l.ID, &l.NotificationID, &l.Channel, &l.Status, &errMsg, &l.SentAt); err != nil {
			return nil, s.mapError(err)
		}
		l.ErrorMessage = errMsg.String
		logs = append(logs, l)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return logs, nil
}

const listFinishedDeliveryLogsQuery = `
SELECT l.id, l.notification_id, l.channel, l.status, l.error_message, l.sent_at
FROM delivery_logs l
JOIN notifications n ON n.id = l.notification_id
WHERE n.status <> $1 AND l.sent_at < $2
ORDER BY l.sent_at ASC`

func (s *DB) ListFinishedDeliveryLogs(ctx context.Context, before time.Time) (_ []entity.DeliveryLog, err error) {
	ctx, span := s.startSpan(ctx, "ListFinishedDeliveryLogs")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, listFinishedDeliveryLogsQuery, entity.StatusPending, before)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	logs := make([]entity.DeliveryLog, 0)
	for rows.Next() {
		var l entity.DeliveryLog
		var errMsg pgtype.Text
		if err = rows.Scan(&l.ID, &l.NotificationID, &l.Channel, &l.Status, &errMsg, &l.SentAt); err != nil {
			return nil, s.mapError(err)
		}
		l.ErrorMessage = errMsg.String
		logs = append(logs, l)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return logs, nil
}

const getRecipientQuery = `
SELECT u.id, u.email, u.phone_number, u.push_token, p.allow_email, p.allow_sms, p.allow_push
FROM users u
JOIN user_preferences p ON p.user_id = u.id
WHERE u.id = $1`

func (s *DB) GetRecipient(ctx context.Context, userID string) (_ *entity.Recipient, err error) {
	ctx, span := s.startSpan(ctx, "GetRecipient")
	defer func() { s.endSpan(span, err) }()

	var r entity.Recipient
	var phone, token pgtype.Text
	err = s.conn.QueryRow(ctx, getRecipientQuery, userID).Scan(
		&r.UserID, &r.Email, &phone, &token, &r.AllowEmail, &r.AllowSMS, &r.AllowPush,
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	r.PhoneNumber = phone.String
	r.PushToken = token.String

	return &r, nil
}

const userExistsQuery = `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

func (s *DB) UserExists(ctx context.Context, userID string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UserExists")
	defer func() { s.endSpan(span, err) }()

	var exists bool
	if err = s.conn.QueryRow(ctx, userExistsQuery, userID).Scan(&exists); err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}
