package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Reports service and database health",
		Tags:        []string{"System"},
	}, s.handleHealthCheck)
}

// HealthOutput is the health check response.
type HealthOutput struct {
	Body struct {
		Status   string `json:"status" doc:"Overall status"`
		Database string `json:"database" doc:"Database status"`
	}
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{}
	out.Body.Status = "healthy"
	out.Body.Database = "ok"

	if _, err := s.store.CountTags(ctx); err != nil {
		out.Body.Status = "degraded"
		out.Body.Database = "unreachable"
	}
	return out, nil
}
