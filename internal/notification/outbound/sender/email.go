package sender

import (
	"context"
	"encoding/json"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/instrument"
	"github.com/heralddev/herald/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
)

// Email delivers notifications over SMTP.
type Email struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func NewEmail(client mail.Mail, ins instrument.Instrumentation) *Email {
	return &Email{client: client, ins: ins}
}

func (e *Email) Channel() entity.Channel {
	return entity.ChannelEmail
}

func (e *Email) Send(ctx context.Context, r entity.Recipient, n entity.Notification) error {
	ctx, span := e.ins.Tracer("notification.outbound.sender").Start(ctx, "EmailSend")
	defer span.End()

	subject := n.Content.GetString("subject")
	if subject == "" {
		subject = n.TemplateName
	}

	body := n.Content.GetString("body")
	if body == "" {
		raw, err := json.Marshal(n.Content)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		body = string(raw)
	}

	if err := e.client.Send(ctx, mail.Message{
		To:       []string{r.Email},
		Subject:  subject,
		TextBody: body,
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
