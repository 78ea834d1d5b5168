package service

import (
	"context"
	"fmt"

	"CricketPredict/internal/apperr"
	"CricketPredict/internal/model"
	"CricketPredict/internal/repository"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// PredictionInput 用户提交的预测
type PredictionInput struct {
	TossWinnerID  *uint64 `json:"toss_winner_id"`
	MatchWinnerID uint64  `json:"match_winner_id"`
}

// PredictionService 预测提交与查询
type PredictionService struct {
	predictionRepo repository.PredictionRepository
	matchRepo      repository.MatchRepository
	tournamentRepo repository.TournamentRepository
	userRepo       repository.UserRepository
	clock          clockwork.Clock
	logger         *logrus.Logger
}

// NewPredictionService 创建预测服务
func NewPredictionService(
	predictionRepo repository.PredictionRepository,
	matchRepo repository.MatchRepository,
	tournamentRepo repository.TournamentRepository,
	userRepo repository.UserRepository,
	clock clockwork.Clock,
	logger *logrus.Logger,
) *PredictionService {
	return &PredictionService{
		predictionRepo: predictionRepo,
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		userRepo:       userRepo,
		clock:          clock,
		logger:         logger,
	}
}

// Submit 开赛前可反复提交，按 (user, match) 覆盖
func (s *PredictionService) Submit(ctx context.Context, userID, matchID uint64, in PredictionInput) (*model.Prediction, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	m, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.Status != model.MatchUpcoming || !s.clock.Now().Before(m.StartTime) {
		return nil, apperr.InvalidState("PREDICTION_CLOSED", fmt.Sprintf("predictions for match %d are closed", matchID))
	}
	tournament, err := s.tournamentRepo.GetByID(ctx, m.TournamentID)
	if err != nil {
		return nil, err
	}

	if !m.HasTeam(in.MatchWinnerID) {
		return nil, apperr.Validation("MATCH_PICK_INVALID", "match_winner_id must be one of the two teams")
	}
	if in.TossWinnerID == nil {
		if !tournament.HideTossPredictions {
			return nil, apperr.Validation("TOSS_PICK_REQUIRED", "toss_winner_id is required")
		}
	} else if !m.HasTeam(*in.TossWinnerID) {
		return nil, apperr.Validation("TOSS_PICK_INVALID", "toss_winner_id must be one of the two teams")
	}

	p := &model.Prediction{
		UserID:                 userID,
		MatchID:                matchID,
		PredictedTossWinnerID:  in.TossWinnerID,
		PredictedMatchWinnerID: in.MatchWinnerID,
	}
	if err := s.predictionRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"user_id": userID, "match_id": matchID}).Debug("prediction saved")
	return p, nil
}

// ListForMatch 赛事开启 hide_toss_predictions 时不返回掷币选择
func (s *PredictionService) ListForMatch(ctx context.Context, matchID uint64) ([]*model.Prediction, error) {
	m, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	tournament, err := s.tournamentRepo.GetByID(ctx, m.TournamentID)
	if err != nil {
		return nil, err
	}
	list, err := s.predictionRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !tournament.HideTossPredictions {
		return list, nil
	}
	masked := make([]*model.Prediction, 0, len(list))
	for _, p := range list {
		cp := *p
		cp.PredictedTossWinnerID = nil
		masked = append(masked, &cp)
	}
	return masked, nil
}

func (s *PredictionService) ListForUser(ctx context.Context, userID uint64) ([]*model.Prediction, error) {
	return s.predictionRepo.ListByUser(ctx, userID)
}
