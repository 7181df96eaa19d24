package inbound

import (
	"context"

	"github.com/heralddev/herald/internal/notification/entity"
	"github.com/heralddev/herald/internal/notification/usecase"
)

type ucConsumer interface {
	Deliver(ctx context.Context, in usecase.DeliverInput) error
}

type uc interface {
	ucConsumer

	Create(ctx context.Context, in usecase.CreateInput) (*entity.Notification, error)
	Cancel(ctx context.Context, in usecase.CancelInput) (*usecase.CancelOutput, error)
	Get(ctx context.Context, in usecase.GetInput) (*entity.Notification, error)
	List(ctx context.Context, in usecase.ListInput) ([]entity.NotificationDetail, error)
	ListLogs(ctx context.Context, in usecase.ListLogsInput) ([]entity.DeliveryLog, error)
	ProcessProviderWebhook(ctx context.Context, in usecase.ProviderWebhookInput) error
}
