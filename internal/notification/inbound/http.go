package inbound

import (
	"github.com/heralddev/herald/internal/pkg/hash"
	"github.com/heralddev/herald/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc, webhookHasher hash.Hash) {
	end := &HTTPEndpoint{uc: uc, webhookHasher: webhookHasher}

	r.POST("/api/v1/notifications", end.Create)
	r.GET("/api/v1/notifications", end.List)
	r.GET("/api/v1/notifications/:id", end.Get)
	r.POST("/api/v1/notifications/:id/cancel", end.Cancel)
	r.GET("/api/v1/notifications/:id/logs", end.ListLogs)

	r.POST("/api/v1/webhooks/provider", end.ProviderWebhook)
}
