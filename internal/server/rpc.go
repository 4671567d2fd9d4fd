package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"github.com/Ars145/ZarubaProfile-sub000/internal/analytics"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/Ars145/ZarubaProfile-sub000/internal/service"
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	"github.com/rs/zerolog"
)

const (
	StatsServicePath = "/zaruba.stats.v1.StatsService/"

	GetPlayerStatsProcedure = StatsServicePath + "GetPlayerStats"
	GetRankConfigProcedure  = StatsServicePath + "GetRankConfig"
	GetLeaderboardProcedure = StatsServicePath + "GetLeaderboard"
)

// JSONCodec lets connect carry plain Go structs. Registering it under "json"
// replaces the protobuf JSON codec for both clients and handlers.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type PlayerStatsRequest struct {
	SteamID string `json:"steamId"`
}

type PlayerStatsResponse struct {
	Stats *stats.PlayerView `json:"stats"`
}

type RankConfigRequest struct{}

type RankConfigResponse struct {
	Tiers  stats.TierConfig `json:"tiers"`
	Groups []string         `json:"groups"`
}

type LeaderboardRequest struct {
	Sort  string `json:"sort"`
	Limit int    `json:"limit"`
}

type LeaderboardResponse struct {
	Players []LeaderboardEntry `json:"players"`
}

type StatsServer struct {
	stats  *service.StatsService
	logger zerolog.Logger
}

func NewStatsServer(stats *service.StatsService, logger zerolog.Logger) *StatsServer {
	return &StatsServer{stats: stats, logger: logger}
}

func (s *StatsServer) GetPlayerStats(ctx context.Context, req *connect.Request[PlayerStatsRequest]) (*connect.Response[PlayerStatsResponse], error) {
	view, err := s.stats.PlayerStats(ctx, req.Msg.SteamID)
	if err != nil {
		return nil, s.connectError(err)
	}
	return connect.NewResponse(&PlayerStatsResponse{Stats: view}), nil
}

func (s *StatsServer) GetRankConfig(ctx context.Context, _ *connect.Request[RankConfigRequest]) (*connect.Response[RankConfigResponse], error) {
	tiers, err := s.stats.RankConfig(ctx)
	if err != nil {
		return nil, s.connectError(err)
	}
	return connect.NewResponse(&RankConfigResponse{Tiers: tiers, Groups: rankGroups(tiers)}), nil
}

func (s *StatsServer) GetLeaderboard(ctx context.Context, req *connect.Request[LeaderboardRequest]) (*connect.Response[LeaderboardResponse], error) {
	players, err := s.stats.Leaderboard(ctx, req.Msg.Sort, req.Msg.Limit)
	if err != nil {
		return nil, s.connectError(err)
	}
	return connect.NewResponse(&LeaderboardResponse{Players: toSummaryResponses(players)}), nil
}

// Handler returns the mount path and the handler serving all procedures.
func (s *StatsServer) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(GetPlayerStatsProcedure, connect.NewUnaryHandler(GetPlayerStatsProcedure, s.GetPlayerStats, opts...))
	mux.Handle(GetRankConfigProcedure, connect.NewUnaryHandler(GetRankConfigProcedure, s.GetRankConfig, opts...))
	mux.Handle(GetLeaderboardProcedure, connect.NewUnaryHandler(GetLeaderboardProcedure, s.GetLeaderboard, opts...))
	return StatsServicePath, mux
}

func (s *StatsServer) connectError(err error) error {
	code := connect.CodeInternal
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		code = connect.CodeInvalidArgument
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrStatsNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, analytics.ErrSourceUnavailable):
		code = connect.CodeUnavailable
	}
	if code == connect.CodeInternal {
		s.logger.Error().Err(err).Msg("stats rpc failed")
	}
	return connect.NewError(code, err)
}
