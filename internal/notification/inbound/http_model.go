package inbound

import (
	"net/http"
	"time"

	"github.com/heralddev/herald/internal/pkg/valueobject"
)

type CreateNotificationRequest struct {
	UserID       string              `json:"user_id"`
	ExternalID   string              `json:"external_id"`
	TemplateName string              `json:"template_name"`
	Content      valueobject.JSONMap `json:"content"`
	Priority     string              `json:"priority"`
}

type CreateNotificationResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"user_id"`
	ExternalID   string              `json:"external_id"`
	TemplateName string              `json:"template_name"`
	Content      valueobject.JSONMap `json:"content"`
	Priority     string              `json:"priority"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
}

func (CreateNotificationResponse) StatusCode() int { return http.StatusCreated }

type CancelNotificationResponse struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	CanceledAt time.Time `json:"canceled_at"`
}

type NotificationResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"user_id"`
	ExternalID   string              `json:"external_id"`
	TemplateName string              `json:"template_name"`
	Content      valueobject.JSONMap `json:"content"`
	Priority     string              `json:"priority"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type NotificationDetailResponse struct {
	NotificationResponse
	UserEmail string `json:"user_email"`
}

type NotificationsResponse struct {
	Notifications []NotificationDetailResponse `json:"notifications"`
}

type DeliveryLogResponse struct {
	ID           int64     `json:"id"`
	Channel      string    `json:"channel"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	SentAt       time.Time `json:"sent_at"`
}

type DeliveryLogsResponse struct {
	Logs []DeliveryLogResponse `json:"logs"`
}

type ProviderWebhookRequest struct {
	NotificationID string `json:"notification_id"`
	Channel        string `json:"channel"`
	Event          string `json:"event"`
}
