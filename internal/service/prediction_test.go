package service

import (
	"context"
	"testing"

	"CricketPredict/internal/apperr"
	"CricketPredict/internal/model"
	"CricketPredict/internal/repository/mockrepo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type predictionFixture struct {
	predictions *mockrepo.PredictionRepository
	matches     *mockrepo.MatchRepository
	tournaments *mockrepo.TournamentRepository
	users       *mockrepo.UserRepository
	svc         *PredictionService
}

func newPredictionFixture(match *model.Match, hideToss bool) *predictionFixture {
	f := &predictionFixture{
		predictions: &mockrepo.PredictionRepository{},
		matches:     &mockrepo.MatchRepository{},
		tournaments: &mockrepo.TournamentRepository{},
		users:       &mockrepo.UserRepository{},
	}
	f.users.On("GetByID", mock.Anything, uint64(3)).Return(&model.User{ID: 3}, nil)
	f.matches.On("GetByID", mock.Anything, match.ID).Return(match, nil)
	f.tournaments.On("GetByID", mock.Anything, match.TournamentID).
		Return(&model.Tournament{ID: match.TournamentID, HideTossPredictions: hideToss}, nil)
	f.svc = NewPredictionService(f.predictions, f.matches, f.tournaments, f.users, fakeClock(), quietLogger())
	return f
}

func TestSubmitPrediction(t *testing.T) {
	f := newPredictionFixture(matchIn(model.MatchUpcoming), false)
	f.predictions.On("Upsert", mock.Anything, mock.MatchedBy(func(p *model.Prediction) bool {
		return p.UserID == 3 && p.MatchID == 1 && *p.PredictedTossWinnerID == teamY && p.PredictedMatchWinnerID == teamX
	})).Return(nil)

	p, err := f.svc.Submit(context.Background(), 3, 1, PredictionInput{TossWinnerID: u64(teamY), MatchWinnerID: teamX})
	require.NoError(t, err)
	assert.Equal(t, teamX, p.PredictedMatchWinnerID)
	f.predictions.AssertExpectations(t)
}

func TestSubmitPrediction_rejections(t *testing.T) {
	started := matchIn(model.MatchUpcoming)
	started.StartTime = testNow

	tests := map[string]struct {
		match    *model.Match
		hideToss bool
		in       PredictionInput
		want     apperr.Type
	}{
		"match already started": {match: started, in: PredictionInput{TossWinnerID: u64(teamX), MatchWinnerID: teamX}, want: apperr.TypeInvalidState},
		"match ongoing":         {match: matchIn(model.MatchOngoing), in: PredictionInput{TossWinnerID: u64(teamX), MatchWinnerID: teamX}, want: apperr.TypeInvalidState},
		"winner not playing":    {match: matchIn(model.MatchUpcoming), in: PredictionInput{TossWinnerID: u64(teamX), MatchWinnerID: teamZ}, want: apperr.TypeValidation},
		"toss not playing":      {match: matchIn(model.MatchUpcoming), in: PredictionInput{TossWinnerID: u64(teamZ), MatchWinnerID: teamX}, want: apperr.TypeValidation},
		"toss missing":          {match: matchIn(model.MatchUpcoming), in: PredictionInput{MatchWinnerID: teamX}, want: apperr.TypeValidation},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newPredictionFixture(tc.match, tc.hideToss)
			_, err := f.svc.Submit(context.Background(), 3, 1, tc.in)
			assert.True(t, apperr.Is(err, tc.want), "got %v", err)
			f.predictions.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitPrediction_hiddenTossIsOptional(t *testing.T) {
	f := newPredictionFixture(matchIn(model.MatchUpcoming), true)
	f.predictions.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Prediction")).Return(nil)

	p, err := f.svc.Submit(context.Background(), 3, 1, PredictionInput{MatchWinnerID: teamY})
	require.NoError(t, err)
	assert.Nil(t, p.PredictedTossWinnerID)
}

func TestListForMatch_masksHiddenTossPicks(t *testing.T) {
	f := newPredictionFixture(matchIn(model.MatchUpcoming), true)
	stored := []*model.Prediction{{ID: 1, UserID: 3, MatchID: 1, PredictedTossWinnerID: u64(teamX), PredictedMatchWinnerID: teamY}}
	f.predictions.On("ListByMatch", mock.Anything, uint64(1)).Return(stored, nil)

	list, err := f.svc.ListForMatch(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].PredictedTossWinnerID)
	assert.Equal(t, teamY, list[0].PredictedMatchWinnerID)
	assert.NotNil(t, stored[0].PredictedTossWinnerID, "stored row must not be mutated")
}

func TestListForMatch_visibleTossPicks(t *testing.T) {
	f := newPredictionFixture(matchIn(model.MatchUpcoming), false)
	f.predictions.On("ListByMatch", mock.Anything, uint64(1)).
		Return([]*model.Prediction{{ID: 1, PredictedTossWinnerID: u64(teamX)}}, nil)

	list, err := f.svc.ListForMatch(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, teamX, *list[0].PredictedTossWinnerID)
}
