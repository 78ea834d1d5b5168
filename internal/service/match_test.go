package service

import (
	"context"
	"testing"
	"time"

	"CricketPredict/internal/apperr"
	"CricketPredict/internal/model"
	"CricketPredict/internal/repository"
	"CricketPredict/internal/repository/mockrepo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type matchFixture struct {
	matches     *mockrepo.MatchRepository
	teams       *mockrepo.TeamRepository
	tournaments *mockrepo.TournamentRepository
	ledger      *mockrepo.LedgerRepository
	svc         *MatchService
}

func newMatchFixture() *matchFixture {
	f := &matchFixture{
		matches:     &mockrepo.MatchRepository{},
		teams:       &mockrepo.TeamRepository{},
		tournaments: &mockrepo.TournamentRepository{},
		ledger:      &mockrepo.LedgerRepository{},
	}
	logger := quietLogger()
	f.svc = NewMatchService(f.matches, f.teams, f.tournaments, NewScoringService(f.ledger, logger), fakeClock(), logger)
	return f
}

func matchIn(status model.MatchStatus) *model.Match {
	return &model.Match{ID: 1, TournamentID: 7, Team1ID: teamX, Team2ID: teamY, Status: status, StartTime: testNow.Add(time.Hour)}
}

func TestUpdateStatus_completeTriggersScoring(t *testing.T) {
	f := newMatchFixture()
	f.matches.On("GetByID", mock.Anything, uint64(1)).Return(matchIn(model.MatchOngoing), nil)
	f.matches.On("TransitionStatus", mock.Anything, uint64(1), model.MatchOngoing, mock.MatchedBy(func(r repository.MatchResult) bool {
		return r.Status == model.MatchCompleted &&
			*r.TossWinnerID == teamX &&
			*r.MatchWinnerID == teamY &&
			r.CompletedAt != nil && r.CompletedAt.Equal(testNow)
	})).Return(nil)
	f.ledger.On("ApplyMatchScores", mock.Anything, uint64(1), mock.Anything).
		Return(&repository.ScoreSummary{MatchID: 1, PredictionsScored: 3, PointsAwarded: 4}, nil)

	change, err := f.svc.UpdateStatus(context.Background(), 1, model.MatchCompleted, u64(teamX), u64(teamY))
	require.NoError(t, err)
	assert.Equal(t, model.MatchCompleted, change.Match.Status)
	require.NotNil(t, change.Score)
	assert.Equal(t, 4, change.Score.PointsAwarded)
	f.ledger.AssertExpectations(t)
}

func TestUpdateStatus_completeWithoutTossWinner(t *testing.T) {
	tests := map[string]*uint64{
		"winner only": u64(teamY),
		"no result":   nil,
	}

	for name, winner := range tests {
		t.Run(name, func(t *testing.T) {
			f := newMatchFixture()
			f.matches.On("GetByID", mock.Anything, uint64(1)).Return(matchIn(model.MatchOngoing), nil)
			f.matches.On("TransitionStatus", mock.Anything, uint64(1), model.MatchOngoing, mock.MatchedBy(func(r repository.MatchResult) bool {
				return r.Status == model.MatchCompleted && r.TossWinnerID == nil && assert.ObjectsAreEqual(winner, r.MatchWinnerID)
			})).Return(nil)

			done := matchIn(model.MatchCompleted)
			done.MatchWinnerID = winner
			preds := []*model.Prediction{
				{ID: 11, UserID: 1, PredictedTossWinnerID: u64(teamX), PredictedMatchWinnerID: teamY},
			}
			var scored []repository.PredictionScore
			f.ledger.On("ApplyMatchScores", mock.Anything, uint64(1), mock.Anything).
				Run(func(args mock.Arguments) {
					var err error
					scored, err = args.Get(2).(repository.MatchScorer)(done, preds)
					require.NoError(t, err)
				}).
				Return(&repository.ScoreSummary{MatchID: 1, PredictionsScored: 1}, nil)

			change, err := f.svc.UpdateStatus(context.Background(), 1, model.MatchCompleted, nil, winner)
			require.NoError(t, err)
			require.NotNil(t, change.Score)
			assert.Nil(t, change.Match.TossWinnerID)
			f.ledger.AssertExpectations(t)

			require.Len(t, scored, 1)
			assert.False(t, scored[0].TossCorrect)
			assert.Equal(t, winner != nil, scored[0].MatchCorrect)
		})
	}
}

func TestUpdateStatus_nonCompletedSkipsScoring(t *testing.T) {
	f := newMatchFixture()
	f.matches.On("GetByID", mock.Anything, uint64(1)).Return(matchIn(model.MatchOngoing), nil)
	f.matches.On("TransitionStatus", mock.Anything, uint64(1), model.MatchOngoing, repository.MatchResult{Status: model.MatchTie}).Return(nil)

	change, err := f.svc.UpdateStatus(context.Background(), 1, model.MatchTie, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, change.Score)
	assert.Nil(t, change.Match.TossWinnerID)
	f.ledger.AssertNotCalled(t, "ApplyMatchScores", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_rejections(t *testing.T) {
	tests := map[string]struct {
		current model.MatchStatus
		next    model.MatchStatus
		toss    *uint64
		winner  *uint64
		want    apperr.Type
	}{
		"unknown status":           {current: model.MatchOngoing, next: "abandoned", want: apperr.TypeValidation},
		"terminal state":           {current: model.MatchCompleted, next: model.MatchOngoing, want: apperr.TypeInvalidState},
		"tie from upcoming":        {current: model.MatchUpcoming, next: model.MatchTie, want: apperr.TypeInvalidState},
		"toss winner not playing":  {current: model.MatchOngoing, next: model.MatchCompleted, toss: u64(teamZ), want: apperr.TypeValidation},
		"match winner not playing": {current: model.MatchOngoing, next: model.MatchCompleted, toss: u64(teamX), winner: u64(teamZ), want: apperr.TypeValidation},
		"winner on void":           {current: model.MatchOngoing, next: model.MatchVoid, winner: u64(teamX), want: apperr.TypeValidation},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newMatchFixture()
			f.matches.On("GetByID", mock.Anything, uint64(1)).Return(matchIn(tc.current), nil)

			_, err := f.svc.UpdateStatus(context.Background(), 1, tc.next, tc.toss, tc.winner)
			assert.True(t, apperr.Is(err, tc.want), "got %v", err)
			f.matches.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCorrectResult(t *testing.T) {
	f := newMatchFixture()
	done := matchIn(model.MatchCompleted)
	done.TossWinnerID, done.MatchWinnerID = u64(teamX), u64(teamX)
	f.matches.On("GetByID", mock.Anything, uint64(1)).Return(done, nil)
	f.matches.On("SetResult", mock.Anything, uint64(1), u64(teamY), u64(teamX)).Return(nil)
	f.ledger.On("ApplyMatchScores", mock.Anything, uint64(1), mock.Anything).
		Return(&repository.ScoreSummary{MatchID: 1, PointsAwarded: 2, PointsRevoked: 3}, nil)

	summary, err := f.svc.CorrectResult(context.Background(), 1, u64(teamY), u64(teamX))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.PointsRevoked)
}

func TestCorrectResult_requiresCompletedMatch(t *testing.T) {
	f := newMatchFixture()
	f.matches.On("GetByID", mock.Anything, uint64(1)).Return(matchIn(model.MatchOngoing), nil)

	_, err := f.svc.CorrectResult(context.Background(), 1, u64(teamX), nil)
	assert.True(t, apperr.Is(err, apperr.TypeInvalidState))
	f.matches.AssertNotCalled(t, "SetResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStartDueMatches(t *testing.T) {
	f := newMatchFixture()
	f.matches.On("ListDueUpcoming", mock.Anything, testNow, 200).Return([]*model.Match{{ID: 1}, {ID: 2}, {ID: 3}}, nil)
	ongoing := repository.MatchResult{Status: model.MatchOngoing}
	f.matches.On("TransitionStatus", mock.Anything, uint64(1), model.MatchUpcoming, ongoing).Return(nil)
	f.matches.On("TransitionStatus", mock.Anything, uint64(2), model.MatchUpcoming, ongoing).
		Return(apperr.InvalidState("MATCH_STATUS_CHANGED", "match 2 is no longer upcoming"))
	f.matches.On("TransitionStatus", mock.Anything, uint64(3), model.MatchUpcoming, ongoing).Return(nil)

	n, err := f.svc.StartDueMatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCreateMatch_validation(t *testing.T) {
	f := newMatchFixture()
	start := testNow.Add(24 * time.Hour)

	_, err := f.svc.Create(context.Background(), MatchInput{TournamentID: 7, Team1ID: teamX, Team2ID: teamX, StartTime: start})
	assert.True(t, apperr.Is(err, apperr.TypeValidation))

	f.tournaments.On("GetByID", mock.Anything, uint64(7)).Return(&model.Tournament{ID: 7}, nil)
	f.teams.On("GetByID", mock.Anything, teamX).Return(&model.Team{ID: teamX}, nil)
	f.teams.On("GetByID", mock.Anything, teamY).Return(&model.Team{ID: teamY}, nil)
	f.matches.On("Create", mock.Anything, mock.AnythingOfType("*model.Match")).Return(nil)

	m, err := f.svc.Create(context.Background(), MatchInput{TournamentID: 7, Team1ID: teamX, Team2ID: teamY, Venue: "Eden Gardens", StartTime: start})
	require.NoError(t, err)
	assert.Equal(t, model.MatchUpcoming, m.Status)
	assert.NotEmpty(t, m.MatchUUID)
}
