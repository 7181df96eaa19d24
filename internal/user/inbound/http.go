package inbound

import (
	"github.com/heralddev/herald/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/users", end.Create)
	r.GET("/api/v1/users/:id", end.Get)
	r.GET("/api/v1/users/:id/preferences", end.GetPreferences)
	r.PUT("/api/v1/users/:id/preferences", end.UpdatePreferences)
}
