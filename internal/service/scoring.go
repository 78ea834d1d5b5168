package service

import (
	"context"
	"fmt"

	"CricketPredict/internal/apperr"
	"CricketPredict/internal/model"
	"CricketPredict/internal/repository"

	"github.com/sirupsen/logrus"
)

// ScoringService 比赛完赛后把赛果换算为积分
type ScoringService struct {
	ledgerRepo repository.LedgerRepository
	logger     *logrus.Logger
}

// NewScoringService 创建计分服务
func NewScoringService(ledgerRepo repository.LedgerRepository, logger *logrus.Logger) *ScoringService {
	return &ScoringService{ledgerRepo: ledgerRepo, logger: logger}
}

// CalculatePoints 对已完赛比赛的全部预测计分。
// 整场比赛在一个事务内完成，重复调用只补差额，不会重复加分
func (s *ScoringService) CalculatePoints(ctx context.Context, matchID uint64) (*repository.ScoreSummary, error) {
	summary, err := s.ledgerRepo.ApplyMatchScores(ctx, matchID, ScorePredictions)
	if err != nil {
		s.logger.WithError(err).WithField("match_id", matchID).Warn("CalculatePoints failed")
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"match_id":           matchID,
		"predictions_scored": summary.PredictionsScored,
		"points_awarded":     summary.PointsAwarded,
		"points_revoked":     summary.PointsRevoked,
	}).Info("比赛计分完成")
	return summary, nil
}

// ScorePredictions 判分规则：掷币、胜者各 1 分，赛果为空的一项不计分
func ScorePredictions(match *model.Match, predictions []*model.Prediction) ([]repository.PredictionScore, error) {
	if match.Status != model.MatchCompleted {
		return nil, apperr.InvalidState("MATCH_NOT_COMPLETED",
			fmt.Sprintf("match %d is %s, only completed matches can be scored", match.ID, match.Status))
	}
	scores := make([]repository.PredictionScore, 0, len(predictions))
	for _, p := range predictions {
		toss, winner := model.JudgePicks(p.PredictedTossWinnerID, p.PredictedMatchWinnerID, match.TossWinnerID, match.MatchWinnerID)
		scores = append(scores, repository.PredictionScore{
			PredictionID: p.ID,
			UserID:       p.UserID,
			TossCorrect:  toss,
			MatchCorrect: winner,
		})
	}
	return scores, nil
}
