package inbound

import (
	"encoding/json"
	"io"

	"github.com/heralddev/herald/internal/notification/usecase"
	"github.com/heralddev/herald/internal/pkg/goerror"
	"github.com/heralddev/herald/internal/pkg/hash"
	"github.com/heralddev/herald/internal/pkg/router"
)

const (
	headerIdempotencyKey    = "Idempotency-Key"
	headerProviderSignature = "X-Provider-Signature"
)

type HTTPEndpoint struct {
	uc            uc
	webhookHasher hash.Hash
}

// Create accepts a notification request. The Idempotency-Key header makes
// retries of the same request safe, the response is replayed instead of
// creating a duplicate.
func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	key := r.Header.Get(headerIdempotencyKey)
	if key == "" {
		return nil, goerror.NewInvalidFormat("Missing Idempotency-Key header")
	}

	var req CreateNotificationRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	notif, err := h.uc.Create(r.Context(), usecase.CreateInput{
		UserID:         req.UserID,
		ExternalID:     req.ExternalID,
		TemplateName:   req.TemplateName,
		Content:        req.Content,
		Priority:       req.Priority,
		IdempotencyKey: key,
	})
	if err != nil {
		return nil, err
	}

	return CreateNotificationResponse{
		ID:           notif.ID,
		UserID:       notif.UserID,
		ExternalID:   notif.ExternalID,
		TemplateName: notif.TemplateName,
		Content:      notif.Content,
		Priority:     notif.Priority.String(),
		Status:       notif.Status.String(),
		CreatedAt:    notif.CreatedAt,
	}, nil
}

func (h *HTTPEndpoint) Cancel(r *router.Request) (any, error) {
	out, err := h.uc.Cancel(r.Context(), usecase.CancelInput{ID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}

	return CancelNotificationResponse{
		ID:         out.ID,
		Status:     out.Status.String(),
		CanceledAt: out.CanceledAt,
	}, nil
}

func (h *HTTPEndpoint) Get(r *router.Request) (any, error) {
	notif, err := h.uc.Get(r.Context(), usecase.GetInput{ID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}

	return NotificationResponse{
		ID:           notif.ID,
		UserID:       notif.UserID,
		ExternalID:   notif.ExternalID,
		TemplateName: notif.TemplateName,
		Content:      notif.Content,
		Priority:     notif.Priority.String(),
		Status:       notif.Status.String(),
		CreatedAt:    notif.CreatedAt,
		UpdatedAt:    notif.UpdatedAt,
	}, nil
}

func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}
	offset, err := r.GetQueryInt32("offset")
	if err != nil {
		return nil, err
	}

	items, err := h.uc.List(r.Context(), usecase.ListInput{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationDetailResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, NotificationDetailResponse{
			NotificationResponse: NotificationResponse{
				ID:           item.ID,
				UserID:       item.UserID,
				ExternalID:   item.ExternalID,
				TemplateName: item.TemplateName,
				Content:      item.Content,
				Priority:     item.Priority.String(),
				Status:       item.Status.String(),
				CreatedAt:    item.CreatedAt,
				UpdatedAt:    item.UpdatedAt,
			},
			UserEmail: item.UserEmail,
		})
	}

	return NotificationsResponse{Notifications: resp}, nil
}

func (h *HTTPEndpoint) ListLogs(r *router.Request) (any, error) {
	logs, err := h.uc.ListLogs(r.Context(), usecase.ListLogsInput{NotificationID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}

	resp := make([]DeliveryLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, DeliveryLogResponse{
			ID:           l.ID,
			Channel:      l.Channel.String(),
			Status:       l.Status.String(),
			ErrorMessage: l.ErrorMessage,
			SentAt:       l.SentAt,
		})
	}

	return DeliveryLogsResponse{Logs: resp}, nil
}

// ProviderWebhook ingests delivery callbacks from downstream providers. The
// signature is an HMAC of the raw body, so the body is read before any JSON
// decoding touches it.
func (h *HTTPEndpoint) ProviderWebhook(r *router.Request) (any, error) {
	signature := r.Header.Get(headerProviderSignature)
	if signature == "" {
		return nil, goerror.NewInvalidFormat("Missing " + headerProviderSignature + " header")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	if !h.webhookHasher.Verify(signature, string(body)) {
		return nil, goerror.NewBusiness("Invalid webhook signature", goerror.CodeUnauthorized)
	}

	var req ProviderWebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	return nil, h.uc.ProcessProviderWebhook(r.Context(), usecase.ProviderWebhookInput{
		NotificationID: req.NotificationID,
		Channel:        req.Channel,
		Event:          req.Event,
	})
}
