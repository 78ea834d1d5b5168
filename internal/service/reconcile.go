package service

import (
	"context"

	"CricketPredict/internal/repository"

	"github.com/sirupsen/logrus"
)

// ReconcileReport 对账结果
type ReconcileReport struct {
	UsersChecked   int                      `json:"users_checked"`
	UsersCorrected int                      `json:"users_corrected"`
	Drifts         []repository.PointsDrift `json:"drifts,omitempty"`
}

// ReconcileService 以积分流水为准校正 users.points
type ReconcileService struct {
	ledgerRepo repository.LedgerRepository
	logger     *logrus.Logger
}

// NewReconcileService 创建积分对账服务
func NewReconcileService(ledgerRepo repository.LedgerRepository, logger *logrus.Logger) *ReconcileService {
	return &ReconcileService{ledgerRepo: ledgerRepo, logger: logger}
}

func (s *ReconcileService) Run(ctx context.Context) (*ReconcileReport, error) {
	checked, drifts, err := s.ledgerRepo.ReconcileUserPoints(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range drifts {
		s.logger.WithFields(logrus.Fields{
			"user_id": d.UserID,
			"cached":  d.Cached,
			"ledger":  d.Ledger,
		}).Warn("用户积分与流水不一致，已按流水校正")
	}
	return &ReconcileReport{UsersChecked: checked, UsersCorrected: len(drifts), Drifts: drifts}, nil
}
