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

// Push delivers notifications through an HTTP push provider.
type Push struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	ins        instrument.Instrumentation
}

func NewPush(endpoint, apiKey string, ins instrument.Instrumentation) *Push {
	return &Push{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   endpoint,
		apiKey:     apiKey,
		ins:        ins,
	}
}

func (p *Push) Channel() entity.Channel {
	return entity.ChannelPush
}

func (p *Push) Send(ctx context.Context, r entity.Recipient, n entity.Notification) error {
	ctx, span := p.ins.Tracer("notification.outbound.sender").Start(ctx, "PushSend")
	defer span.End()

	payload, err := json.Marshal(map[string]any{
		"token": r.PushToken,
		"title": n.TemplateName,
		"data":  n.Content,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		err := fmt.Errorf("push provider returned status %d", resp.StatusCode)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
