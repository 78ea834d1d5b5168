// Package mockrepo holds testify mocks of the repository interfaces.
package mockrepo

import (
	"context"
	"time"

	"CricketPredict/internal/model"
	"CricketPredict/internal/repository"

	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	args := r.Called(ctx, user)
	return args.Error(0)
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	args := r.Called(ctx, id)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	args := r.Called(ctx, token)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (r *UserRepository) MarkVerified(ctx context.Context, id uint64) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

func (r *UserRepository) ListForLeaderboard(ctx context.Context) ([]*model.User, error) {
	args := r.Called(ctx)

	var users []*model.User
	if args.Get(0) != nil {
		users = args.Get(0).([]*model.User)
	}
	return users, args.Error(1)
}

type TeamRepository struct {
	mock.Mock
}

func (r *TeamRepository) Create(ctx context.Context, team *model.Team) error {
	args := r.Called(ctx, team)
	return args.Error(0)
}

func (r *TeamRepository) List(ctx context.Context) ([]*model.Team, error) {
	args := r.Called(ctx)

	var teams []*model.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]*model.Team)
	}
	return teams, args.Error(1)
}

func (r *TeamRepository) GetByID(ctx context.Context, id uint64) (*model.Team, error) {
	args := r.Called(ctx, id)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}
	return t, args.Error(1)
}

func (r *TeamRepository) Update(ctx context.Context, team *model.Team) error {
	args := r.Called(ctx, team)
	return args.Error(0)
}

func (r *TeamRepository) Delete(ctx context.Context, id uint64) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

func (r *TeamRepository) CountMatches(ctx context.Context, id uint64) (int64, error) {
	args := r.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type TournamentRepository struct {
	mock.Mock
}

func (r *TournamentRepository) Create(ctx context.Context, t *model.Tournament) error {
	args := r.Called(ctx, t)
	return args.Error(0)
}

func (r *TournamentRepository) List(ctx context.Context) ([]*model.Tournament, error) {
	args := r.Called(ctx)

	var list []*model.Tournament
	if args.Get(0) != nil {
		list = args.Get(0).([]*model.Tournament)
	}
	return list, args.Error(1)
}

func (r *TournamentRepository) GetByID(ctx context.Context, id uint64) (*model.Tournament, error) {
	args := r.Called(ctx, id)

	var t *model.Tournament
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Tournament)
	}
	return t, args.Error(1)
}

func (r *TournamentRepository) Update(ctx context.Context, t *model.Tournament) error {
	args := r.Called(ctx, t)
	return args.Error(0)
}

func (r *TournamentRepository) Delete(ctx context.Context, id uint64) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

type MatchRepository struct {
	mock.Mock
}

func (r *MatchRepository) Create(ctx context.Context, m *model.Match) error {
	args := r.Called(ctx, m)
	return args.Error(0)
}

func (r *MatchRepository) GetByID(ctx context.Context, id uint64) (*model.Match, error) {
	args := r.Called(ctx, id)

	var m *model.Match
	if args.Get(0) != nil {
		m = args.Get(0).(*model.Match)
	}
	return m, args.Error(1)
}

func (r *MatchRepository) List(ctx context.Context, filter repository.MatchFilter, page, pageSize int) ([]*model.Match, int64, error) {
	args := r.Called(ctx, filter, page, pageSize)

	var list []*model.Match
	if args.Get(0) != nil {
		list = args.Get(0).([]*model.Match)
	}
	return list, args.Get(1).(int64), args.Error(2)
}

func (r *MatchRepository) UpdateSchedule(ctx context.Context, m *model.Match) error {
	args := r.Called(ctx, m)
	return args.Error(0)
}

func (r *MatchRepository) TransitionStatus(ctx context.Context, id uint64, from model.MatchStatus, result repository.MatchResult) error {
	args := r.Called(ctx, id, from, result)
	return args.Error(0)
}

func (r *MatchRepository) SetResult(ctx context.Context, id uint64, tossWinnerID, matchWinnerID *uint64) error {
	args := r.Called(ctx, id, tossWinnerID, matchWinnerID)
	return args.Error(0)
}

func (r *MatchRepository) ListDueUpcoming(ctx context.Context, now time.Time, limit int) ([]*model.Match, error) {
	args := r.Called(ctx, now, limit)

	var list []*model.Match
	if args.Get(0) != nil {
		list = args.Get(0).([]*model.Match)
	}
	return list, args.Error(1)
}

func (r *MatchRepository) Delete(ctx context.Context, id uint64) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

type PredictionRepository struct {
	mock.Mock
}

func (r *PredictionRepository) Upsert(ctx context.Context, p *model.Prediction) error {
	args := r.Called(ctx, p)
	return args.Error(0)
}

func (r *PredictionRepository) ListByMatch(ctx context.Context, matchID uint64) ([]*model.Prediction, error) {
	args := r.Called(ctx, matchID)

	var list []*model.Prediction
	if args.Get(0) != nil {
		list = args.Get(0).([]*model.Prediction)
	}
	return list, args.Error(1)
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID uint64) ([]*model.Prediction, error) {
	args := r.Called(ctx, userID)

	var list []*model.Prediction
	if args.Get(0) != nil {
		list = args.Get(0).([]*model.Prediction)
	}
	return list, args.Error(1)
}

// LedgerRepository 的 ApplyMatchScores 不执行 scorer，需要的测试用 .Run 取出 args.Get(2)
type LedgerRepository struct {
	mock.Mock
}

func (r *LedgerRepository) ApplyMatchScores(ctx context.Context, matchID uint64, scorer repository.MatchScorer) (*repository.ScoreSummary, error) {
	args := r.Called(ctx, matchID, scorer)

	var s *repository.ScoreSummary
	if args.Get(0) != nil {
		s = args.Get(0).(*repository.ScoreSummary)
	}
	return s, args.Error(1)
}

func (r *LedgerRepository) ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.PointsLedgerEntry, int64, error) {
	args := r.Called(ctx, userID, page, pageSize)

	var list []*model.PointsLedgerEntry
	if args.Get(0) != nil {
		list = args.Get(0).([]*model.PointsLedgerEntry)
	}
	return list, args.Get(1).(int64), args.Error(2)
}

func (r *LedgerRepository) SumByUser(ctx context.Context, userID uint64) (int64, error) {
	args := r.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (r *LedgerRepository) ReconcileUserPoints(ctx context.Context) (int, []repository.PointsDrift, error) {
	args := r.Called(ctx)

	var drifts []repository.PointsDrift
	if args.Get(1) != nil {
		drifts = args.Get(1).([]repository.PointsDrift)
	}
	return args.Int(0), drifts, args.Error(2)
}

type LeaderboardRepository struct {
	mock.Mock
}

func (r *LeaderboardRepository) ListCompletedOutcomes(ctx context.Context, filter repository.OutcomeFilter) ([]*repository.PredictionOutcome, error) {
	args := r.Called(ctx, filter)

	var rows []*repository.PredictionOutcome
	if args.Get(0) != nil {
		rows = args.Get(0).([]*repository.PredictionOutcome)
	}
	return rows, args.Error(1)
}

type TicketRepository struct {
	mock.Mock
}

func (r *TicketRepository) Create(ctx context.Context, t *model.SupportTicket) error {
	args := r.Called(ctx, t)
	return args.Error(0)
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint64) (*model.SupportTicket, error) {
	args := r.Called(ctx, id)

	var t *model.SupportTicket
	if args.Get(0) != nil {
		t = args.Get(0).(*model.SupportTicket)
	}
	return t, args.Error(1)
}

func (r *TicketRepository) List(ctx context.Context, status model.TicketStatus, page, pageSize int) ([]*model.SupportTicket, int64, error) {
	args := r.Called(ctx, status, page, pageSize)

	var list []*model.SupportTicket
	if args.Get(0) != nil {
		list = args.Get(0).([]*model.SupportTicket)
	}
	return list, args.Get(1).(int64), args.Error(2)
}

func (r *TicketRepository) Respond(ctx context.Context, id uint64, reply string, status model.TicketStatus, resolvedAt *time.Time) error {
	args := r.Called(ctx, id, reply, status, resolvedAt)
	return args.Error(0)
}

var (
	_ repository.UserRepository        = (*UserRepository)(nil)
	_ repository.TeamRepository        = (*TeamRepository)(nil)
	_ repository.TournamentRepository  = (*TournamentRepository)(nil)
	_ repository.MatchRepository       = (*MatchRepository)(nil)
	_ repository.PredictionRepository  = (*PredictionRepository)(nil)
	_ repository.LedgerRepository      = (*LedgerRepository)(nil)
	_ repository.LeaderboardRepository = (*LeaderboardRepository)(nil)
	_ repository.TicketRepository      = (*TicketRepository)(nil)
)
