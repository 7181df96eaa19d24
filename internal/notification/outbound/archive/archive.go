// Package archive writes delivery log snapshots to object storage.
package archive

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/instrument"
	"github.com/heralddev/herald/internal/pkg/storage"
	"go.opentelemetry.io/otel/codes"
)

type Archive struct {
	store  storage.Storage
	bucket string
	ins    instrument.Instrumentation
}

func New(store storage.Storage, bucket string, ins instrument.Instrumentation) *Archive {
	return &Archive{store: store, bucket: bucket, ins: ins}
}

// WriteDeliveryLogs uploads one CSV object containing the given log rows.
// The object key embeds the snapshot time so repeated exports never collide.
func (a *Archive) WriteDeliveryLogs(ctx context.Context, at time.Time, logs []entity.DeliveryLog) (string, error) {
	ctx, span := a.ins.Tracer("notification.outbound.archive").Start(ctx, "WriteDeliveryLogs")
	defer span.End()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "notification_id", "channel", "status", "error_message", "sent_at"}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	for _, l := range logs {
		record := []string{
			strconv.FormatInt(l.ID, 10),
			l.NotificationID,
			l.Channel.String(),
			l.Status.String(),
			l.ErrorMessage,
			l.SentAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	key := fmt.Sprintf("delivery-logs/%s.csv", at.UTC().Format("2006-01-02T15-04-05"))
	if _, err := a.store.PutObject(ctx, a.bucket, key, &buf, storage.PutOptions{
		Size:        int64(buf.Len()),
		ContentType: "text/csv",
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return key, nil
}
