package inbound

import (
	"github.com/shandysiswandi/userbite/internal/pkg/mediator"
	"github.com/shandysiswandi/userbite/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, m *mediator.Mediator) {
	end := &HTTPEndpoint{m: m}

	r.GET("/api/v1/users", end.ListUsers)
	r.POST("/api/v1/users", end.CreateUser)
	r.GET("/api/v1/users-search", end.FindUsers)
	r.GET("/api/v1/users/:id", end.GetUser)
	r.PUT("/api/v1/users/:id", end.UpdateUser)
	r.DELETE("/api/v1/users/:id", end.DeleteUser)
}
