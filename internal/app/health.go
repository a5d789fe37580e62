package app

import (
	"context"
	"time"

	"github.com/shandysiswandi/userbite/internal/pkg/goerror"
	"github.com/shandysiswandi/userbite/internal/pkg/router"
)

type healthResponse struct {
	Status    string            `json:"status"`
	Resources map[string]string `json:"resources"`
}

func (healthResponse) Message() string {
	return "Service is healthy"
}

// health pings every connected resource.
func (a *App) health(r *router.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Resources: map[string]string{}}

	if a.dbConn != nil {
		if err := a.dbConn.Ping(ctx); err != nil {
			return nil, goerror.NewServer(err)
		}
		resp.Resources["database"] = "ok"
	} else {
		resp.Resources["database"] = "memory"
	}

	if a.cacheConn != nil {
		if err := a.cacheConn.Ping(ctx).Err(); err != nil {
			return nil, goerror.NewServer(err)
		}
		resp.Resources["redis"] = "ok"
	}

	return resp, nil
}
