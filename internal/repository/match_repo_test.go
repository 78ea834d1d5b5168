package repository

import (
	"context"
	"testing"
	"time"

	"CricketPredict/internal/apperr"
	"CricketPredict/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRepository_transitionRequiresExpectedStatus(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewMatchRepository(db)
	tour := createTournament(t, db)
	m := createMatch(t, db, tour.ID, createTeam(t, db), createTeam(t, db), time.Now().Add(time.Hour))

	require.NoError(t, repo.TransitionStatus(ctx, m.ID, model.MatchUpcoming, MatchResult{Status: model.MatchOngoing}))

	err := repo.TransitionStatus(ctx, m.ID, model.MatchUpcoming, MatchResult{Status: model.MatchVoid})
	assert.True(t, apperr.Is(err, apperr.TypeInvalidState))

	err = repo.TransitionStatus(ctx, 987654321, model.MatchUpcoming, MatchResult{Status: model.MatchOngoing})
	assert.True(t, apperr.Is(err, apperr.TypeNotFound))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MatchOngoing, got.Status)
	assert.Nil(t, got.TossWinnerID)
}

func TestMatchRepository_listDueUpcoming(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tour := createTournament(t, db)
	a, b := createTeam(t, db), createTeam(t, db)
	past := createMatch(t, db, tour.ID, a, b, time.Now().Add(-time.Minute))
	future := createMatch(t, db, tour.ID, a, b, time.Now().Add(time.Hour))

	due, err := NewMatchRepository(db).ListDueUpcoming(ctx, time.Now(), 1000)
	require.NoError(t, err)

	ids := map[uint64]bool{}
	for _, m := range due {
		ids[m.ID] = true
	}
	assert.True(t, ids[past.ID])
	assert.False(t, ids[future.ID])
}

func TestMatchRepository_deleteGuards(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewMatchRepository(db)
	tour := createTournament(t, db)
	a, b := createTeam(t, db), createTeam(t, db)

	m := createMatch(t, db, tour.ID, a, b, time.Now().Add(time.Hour))
	u := createUser(t, db)
	require.NoError(t, NewPredictionRepository(db).Upsert(ctx, &model.Prediction{UserID: u.ID, MatchID: m.ID, PredictedMatchWinnerID: a.ID}))
	assert.True(t, apperr.Is(repo.Delete(ctx, m.ID), apperr.TypeConflict))

	empty := createMatch(t, db, tour.ID, a, b, time.Now().Add(time.Hour))
	require.NoError(t, repo.Delete(ctx, empty.ID))
	_, err := repo.GetByID(ctx, empty.ID)
	assert.True(t, apperr.Is(err, apperr.TypeNotFound))
}

func TestPredictionRepository_upsertOverwrites(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewPredictionRepository(db)
	tour := createTournament(t, db)
	a, b := createTeam(t, db), createTeam(t, db)
	m := createMatch(t, db, tour.ID, a, b, time.Now().Add(time.Hour))
	u := createUser(t, db)

	require.NoError(t, repo.Upsert(ctx, &model.Prediction{UserID: u.ID, MatchID: m.ID, PredictedTossWinnerID: ptr(a.ID), PredictedMatchWinnerID: a.ID}))
	require.NoError(t, repo.Upsert(ctx, &model.Prediction{UserID: u.ID, MatchID: m.ID, PredictedTossWinnerID: ptr(b.ID), PredictedMatchWinnerID: b.ID}))

	list, err := repo.ListByMatch(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].PredictedMatchWinnerID)
	assert.Equal(t, b.ID, *list[0].PredictedTossWinnerID)
}

func TestLeaderboardRepository_onlyCompletedMatches(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tour := createTournament(t, db)
	a, b := createTeam(t, db), createTeam(t, db)
	u := createUser(t, db)
	preds := NewPredictionRepository(db)
	matches := NewMatchRepository(db)

	done := createMatch(t, db, tour.ID, a, b, time.Now().Add(time.Hour))
	open := createMatch(t, db, tour.ID, a, b, time.Now().Add(time.Hour))
	require.NoError(t, preds.Upsert(ctx, &model.Prediction{UserID: u.ID, MatchID: done.ID, PredictedMatchWinnerID: a.ID}))
	require.NoError(t, preds.Upsert(ctx, &model.Prediction{UserID: u.ID, MatchID: open.ID, PredictedMatchWinnerID: a.ID}))

	now := time.Now()
	require.NoError(t, matches.TransitionStatus(ctx, done.ID, model.MatchUpcoming, MatchResult{
		Status: model.MatchCompleted, TossWinnerID: ptr(b.ID), MatchWinnerID: ptr(a.ID), CompletedAt: &now,
	}))

	rows, err := NewLeaderboardRepository(db).ListCompletedOutcomes(ctx, OutcomeFilter{TournamentID: tour.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, u.ID, rows[0].UserID)
	assert.Equal(t, done.ID, rows[0].MatchID)
	assert.Equal(t, b.ID, *rows[0].TossWinnerID)
	assert.Nil(t, rows[0].PredictedTossWinnerID)

	later := time.Now().Add(24 * time.Hour)
	rows, err = NewLeaderboardRepository(db).ListCompletedOutcomes(ctx, OutcomeFilter{TournamentID: tour.ID, Since: &later})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTournamentRepository_deleteRefusesWithMatches(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewTournamentRepository(db)

	busy := createTournament(t, db)
	createMatch(t, db, busy.ID, createTeam(t, db), createTeam(t, db), time.Now().Add(time.Hour))
	assert.True(t, apperr.Is(repo.Delete(ctx, busy.ID), apperr.TypeConflict))

	idle := createTournament(t, db)
	require.NoError(t, repo.Delete(ctx, idle.ID))
	assert.True(t, apperr.Is(repo.Delete(ctx, idle.ID), apperr.TypeNotFound))
}
