package repository

import (
	"context"
	"time"

	"CricketPredict/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PredictionRepository 预测仓储
type PredictionRepository interface {
	// Upsert 按 (user_id, match_id) 插入或覆盖选择，已有的得分字段不变
	Upsert(ctx context.Context, p *model.Prediction) error
	ListByMatch(ctx context.Context, matchID uint64) ([]*model.Prediction, error)
	ListByUser(ctx context.Context, userID uint64) ([]*model.Prediction, error)
}

type predictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) Upsert(ctx context.Context, p *model.Prediction) error {
	p.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "match_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"predicted_toss_winner_id",
			"predicted_match_winner_id",
			"updated_at",
		}),
	}).Create(p).Error
	return translate(err, "PREDICTION_UPSERT", "")
}

func (r *predictionRepository) ListByMatch(ctx context.Context, matchID uint64) ([]*model.Prediction, error) {
	var list []*model.Prediction
	if err := r.db.WithContext(ctx).Where("match_id = ?", matchID).Order("id ASC").Find(&list).Error; err != nil {
		return nil, translate(err, "PREDICTION_LIST", "")
	}
	return list, nil
}

func (r *predictionRepository) ListByUser(ctx context.Context, userID uint64) ([]*model.Prediction, error) {
	var list []*model.Prediction
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&list).Error; err != nil {
		return nil, translate(err, "PREDICTION_LIST", "")
	}
	return list, nil
}
