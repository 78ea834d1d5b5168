package repository

import (
	"context"
	"fmt"
	"time"

	"CricketPredict/internal/apperr"
	"CricketPredict/internal/model"

	"gorm.io/gorm"
)

// TournamentRepository 赛事仓储
type TournamentRepository interface {
	Create(ctx context.Context, t *model.Tournament) error
	List(ctx context.Context) ([]*model.Tournament, error)
	GetByID(ctx context.Context, id uint64) (*model.Tournament, error)
	Update(ctx context.Context, t *model.Tournament) error
	// Delete 仍有比赛挂在赛事下时返回 Conflict
	Delete(ctx context.Context, id uint64) error
}

type tournamentRepository struct {
	db *gorm.DB
}

func NewTournamentRepository(db *gorm.DB) TournamentRepository {
	return &tournamentRepository{db: db}
}

func (r *tournamentRepository) Create(ctx context.Context, t *model.Tournament) error {
	return translate(r.db.WithContext(ctx).Create(t).Error, "TOURNAMENT_CREATE", "")
}

func (r *tournamentRepository) List(ctx context.Context) ([]*model.Tournament, error) {
	var list []*model.Tournament
	if err := r.db.WithContext(ctx).Order("start_date DESC NULLS LAST, id DESC").Find(&list).Error; err != nil {
		return nil, translate(err, "TOURNAMENT_LIST", "")
	}
	return list, nil
}

func (r *tournamentRepository) GetByID(ctx context.Context, id uint64) (*model.Tournament, error) {
	var t model.Tournament
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, translate(err, "TOURNAMENT_NOT_FOUND", fmt.Sprintf("tournament %d not found", id))
	}
	return &t, nil
}

func (r *tournamentRepository) Update(ctx context.Context, t *model.Tournament) error {
	res := r.db.WithContext(ctx).Model(&model.Tournament{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"name":                  t.Name,
			"slug":                  t.Slug,
			"season":                t.Season,
			"start_date":            t.StartDate,
			"end_date":              t.EndDate,
			"is_premium":            t.IsPremium,
			"hide_toss_predictions": t.HideTossPredictions,
			"updated_at":            time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error, "TOURNAMENT_UPDATE", "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "TOURNAMENT_NOT_FOUND", fmt.Sprintf("tournament %d not found", t.ID))
	}
	return nil
}

func (r *tournamentRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Match{}).Where("tournament_id = ?", id).Count(&n).Error; err != nil {
			return translate(err, "TOURNAMENT_COUNT_MATCHES", "")
		}
		if n > 0 {
			return apperr.Conflict("TOURNAMENT_IN_USE", fmt.Sprintf("tournament %d has %d matches", id, n))
		}
		res := tx.Where("id = ?", id).Delete(&model.Tournament{})
		if res.Error != nil {
			return translate(res.Error, "TOURNAMENT_DELETE", "")
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "TOURNAMENT_NOT_FOUND", fmt.Sprintf("tournament %d not found", id))
		}
		return nil
	})
}
