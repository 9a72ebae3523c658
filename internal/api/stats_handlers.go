package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/momentumapp/momentum-server/internal/domain"
)

func (s *Server) registerStatsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getStats",
		Method:      http.MethodGet,
		Path:        "/api/stats",
		Summary:     "Get statistics",
		Description: "Returns the derived-metrics bundle for a trailing period ending today",
		Tags:        []string{"Stats"},
		Security:    []map[string][]string{{"session": {}}},
	}, s.handleGetStats)
}

// GetStatsInput contains parameters for the stats bundle.
type GetStatsInput struct {
	Period int `query:"period" default:"7" doc:"Trailing period in days, clamped to 1-90 (default 7)"`
}

// StatsOutput wraps the stats bundle for Huma.
type StatsOutput struct {
	Body domain.Stats
}

func (s *Server) handleGetStats(ctx context.Context, input *GetStatsInput) (*StatsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.services.Stats.GetStats(ctx, userID, input.Period)
	if err != nil {
		return nil, err
	}

	return &StatsOutput{Body: *stats}, nil
}
