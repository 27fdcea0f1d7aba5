package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cs2-tracker/internal/constants"
	"cs2-tracker/internal/domain"
	"cs2-tracker/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const (
	TrackerServicePath = "/tracker.v1.TrackerService/"

	GetProfileProcedure  = TrackerServicePath + "GetProfile"
	GetRankingProcedure  = TrackerServicePath + "GetRanking"
	GetAveragesProcedure = TrackerServicePath + "GetAverages"
)

// Tracker is the profile side of the core the server exposes.
type Tracker interface {
	ResolveAndFetchProfile(ctx context.Context, search string) (*domain.ProfileBundle, error)
	ComputeAverages(ctx context.Context, search string, window int) (*domain.WindowComparison, error)
}

// Rankings serves leaderboard pages, usually through the ranking cache.
type Rankings interface {
	FetchRegionRanking(ctx context.Context, region domain.Region, limit, offset int) ([]domain.RankedListEntry, error)
}

type TrackerServer struct {
	tracker  Tracker
	rankings Rankings
	logger   zerolog.Logger
}

func NewTrackerServer(tracker Tracker, rankings Rankings, logger zerolog.Logger) *TrackerServer {
	return &TrackerServer{tracker: tracker, rankings: rankings, logger: logger}
}

// Handler returns the path prefix and handler serving every procedure.
func (s *TrackerServer) Handler() (string, http.Handler) {
	opts := []connect.HandlerOption{connect.WithCodec(jsonCodec{})}

	mux := http.NewServeMux()
	mux.Handle(GetProfileProcedure, connect.NewUnaryHandler(GetProfileProcedure, s.GetProfile, opts...))
	mux.Handle(GetRankingProcedure, connect.NewUnaryHandler(GetRankingProcedure, s.GetRanking, opts...))
	mux.Handle(GetAveragesProcedure, connect.NewUnaryHandler(GetAveragesProcedure, s.GetAverages, opts...))
	return TrackerServicePath, mux
}

func (s *TrackerServer) GetProfile(ctx context.Context, req *connect.Request[GetProfileRequest]) (*connect.Response[GetProfileResponse], error) {
	start := time.Now()

	bundle, err := s.tracker.ResolveAndFetchProfile(ctx, req.Msg.Search)
	if err != nil {
		return nil, s.toConnectError(ctx, "GetProfile", err)
	}

	s.log(ctx).Debug().
		Str("player_id", bundle.Profile.PlayerID).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("profile served")
	return connect.NewResponse(toProfileResponse(bundle)), nil
}

func (s *TrackerServer) GetRanking(ctx context.Context, req *connect.Request[GetRankingRequest]) (*connect.Response[GetRankingResponse], error) {
	region, err := domain.ParseRegion(req.Msg.Region)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	limit := req.Msg.Limit
	if limit <= 0 {
		limit = constants.RankingDefaultLimit
	}
	limit = min(limit, constants.RankingPageMaxLimit)
	offset := max(req.Msg.Offset, 0)

	entries, err := s.rankings.FetchRegionRanking(ctx, region, limit, offset)
	if err != nil {
		return nil, s.toConnectError(ctx, "GetRanking", err)
	}

	return connect.NewResponse(&GetRankingResponse{
		Region:  region.String(),
		Entries: toRankingEntries(entries),
	}), nil
}

func (s *TrackerServer) GetAverages(ctx context.Context, req *connect.Request[GetAveragesRequest]) (*connect.Response[GetAveragesResponse], error) {
	cmp, err := s.tracker.ComputeAverages(ctx, req.Msg.Search, req.Msg.Window)
	if err != nil {
		return nil, s.toConnectError(ctx, "GetAverages", err)
	}
	return connect.NewResponse(&GetAveragesResponse{Window: toWindow(*cmp)}), nil
}

func (s *TrackerServer) toConnectError(ctx context.Context, procedure string, err error) error {
	code := errorCode(err)

	event := s.log(ctx).Warn()
	if code == connect.CodeInternal || code == connect.CodeUnavailable {
		event = s.log(ctx).Error()
	}
	event.Err(err).Str("procedure", procedure).Stringer("code", code).Msg("request failed")

	return connect.NewError(code, err)
}

// log prefers the request scoped logger set by the request id middleware.
func (s *TrackerServer) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}

func errorCode(err error) connect.Code {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, service.ErrInvalidWindow):
		return connect.CodeInvalidArgument
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case errors.Is(err, domain.ErrRankingUnavailable), domain.IsTransport(err):
		return connect.CodeUnavailable
	default:
		return connect.CodeInternal
	}
}
