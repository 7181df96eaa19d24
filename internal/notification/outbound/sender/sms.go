package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
)

// SMS delivers notifications through an HTTP SMS provider.
type SMS struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	ins        instrument.Instrumentation
}

func NewSMS(endpoint, apiKey string, ins instrument.Instrumentation) *SMS {
	return &SMS{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   endpoint,
		apiKey:     apiKey,
		ins:        ins,
	}
}

func (s *SMS) Channel() entity.Channel {
	return entity.ChannelSMS
}

func (s *SMS) Send(ctx context.Context, r entity.Recipient, n entity.Notification) error {
	ctx, span := s.ins.Tracer("notification.outbound.sender").Start(ctx, "SMSSend")
	defer span.End()

	text := n.Content.GetString("body")
	if text == "" {
		text = n.TemplateName
	}

	payload, err := json.Marshal(map[string]string{
		"to":   r.PhoneNumber,
		"text": text,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := s.post(ctx, payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (s *SMS) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}

	return nil
}
