package repository

import (
	"context"
	"fmt"
	"time"

	"CricketPredict/internal/model"

	"gorm.io/gorm"
)

// TeamRepository 球队仓储
type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	List(ctx context.Context) ([]*model.Team, error)
	GetByID(ctx context.Context, id uint64) (*model.Team, error)
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id uint64) error
	// CountMatches 该队参与的比赛数，有比赛时不允许删除
	CountMatches(ctx context.Context, id uint64) (int64, error)
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *model.Team) error {
	return translate(r.db.WithContext(ctx).Create(team).Error, "TEAM_CREATE", "")
}

func (r *teamRepository) List(ctx context.Context) ([]*model.Team, error) {
	var teams []*model.Team
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&teams).Error; err != nil {
		return nil, translate(err, "TEAM_LIST", "")
	}
	return teams, nil
}

func (r *teamRepository) GetByID(ctx context.Context, id uint64) (*model.Team, error) {
	var t model.Team
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, translate(err, "TEAM_NOT_FOUND", fmt.Sprintf("team %d not found", id))
	}
	return &t, nil
}

func (r *teamRepository) Update(ctx context.Context, team *model.Team) error {
	res := r.db.WithContext(ctx).Model(&model.Team{}).
		Where("id = ?", team.ID).
		Updates(map[string]interface{}{
			"name":       team.Name,
			"short_name": team.ShortName,
			"slug":       team.Slug,
			"logo_url":   team.LogoURL,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error, "TEAM_UPDATE", "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "TEAM_NOT_FOUND", fmt.Sprintf("team %d not found", team.ID))
	}
	return nil
}

func (r *teamRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Team{})
	if res.Error != nil {
		return translate(res.Error, "TEAM_DELETE", "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "TEAM_NOT_FOUND", fmt.Sprintf("team %d not found", id))
	}
	return nil
}

func (r *teamRepository) CountMatches(ctx context.Context, id uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Match{}).
		Where("team1_id = ? OR team2_id = ?", id, id).
		Count(&n).Error
	return n, translate(err, "TEAM_COUNT_MATCHES", "")
}
