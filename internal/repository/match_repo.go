package repository

import (
	"context"
	"fmt"
	"time"

	"CricketPredict/internal/apperr"
	"CricketPredict/internal/model"

	"gorm.io/gorm"
)

// MatchFilter 列表筛选条件
type MatchFilter struct {
	TournamentID uint64            // 0 表示不过滤
	Status       model.MatchStatus // 空表示不过滤
}

// MatchResult 状态流转时写入的赛果；非 completed 状态下两者均为 nil
type MatchResult struct {
	Status        model.MatchStatus
	TossWinnerID  *uint64
	MatchWinnerID *uint64
	CompletedAt   *time.Time
}

// MatchRepository 比赛仓储
type MatchRepository interface {
	Create(ctx context.Context, match *model.Match) error
	GetByID(ctx context.Context, id uint64) (*model.Match, error)
	// List 按过滤条件分页查询，按开赛时间升序
	List(ctx context.Context, filter MatchFilter, page, pageSize int) ([]*model.Match, int64, error)
	// UpdateSchedule 修改场地/开赛时间/参赛队，仅 upcoming 时生效
	UpdateSchedule(ctx context.Context, match *model.Match) error
	// TransitionStatus 以 from 为前提条件更新状态与赛果，并发下只有一个请求能成功
	TransitionStatus(ctx context.Context, id uint64, from model.MatchStatus, result MatchResult) error
	// SetResult 仅修改 completed 比赛的赛果（更正）
	SetResult(ctx context.Context, id uint64, tossWinnerID, matchWinnerID *uint64) error
	// ListDueUpcoming 已过开赛时间但仍为 upcoming 的比赛
	ListDueUpcoming(ctx context.Context, now time.Time, limit int) ([]*model.Match, error)
	// Delete 仅删除 upcoming 且无预测的比赛
	Delete(ctx context.Context, id uint64) error
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository 创建 MatchRepository 实例
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *model.Match) error {
	return translate(r.db.WithContext(ctx).Create(match).Error, "MATCH_CREATE", "")
}

func (r *matchRepository) GetByID(ctx context.Context, id uint64) (*model.Match, error) {
	var m model.Match
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, "MATCH_NOT_FOUND", fmt.Sprintf("match %d not found", id))
	}
	return &m, nil
}

func (r *matchRepository) List(ctx context.Context, filter MatchFilter, page, pageSize int) ([]*model.Match, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	db := r.db.WithContext(ctx).Model(&model.Match{})
	if filter.TournamentID != 0 {
		db = db.Where("tournament_id = ?", filter.TournamentID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "MATCH_LIST", "")
	}

	var matches []*model.Match
	if err := db.Order("start_time ASC, id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&matches).Error; err != nil {
		return nil, 0, translate(err, "MATCH_LIST", "")
	}
	return matches, total, nil
}

func (r *matchRepository) UpdateSchedule(ctx context.Context, match *model.Match) error {
	res := r.db.WithContext(ctx).Model(&model.Match{}).
		Where("id = ? AND status = ?", match.ID, model.MatchUpcoming).
		Updates(map[string]interface{}{
			"team1_id":   match.Team1ID,
			"team2_id":   match.Team2ID,
			"venue":      match.Venue,
			"start_time": match.StartTime,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error, "MATCH_UPDATE", "")
	}
	if res.RowsAffected == 0 {
		return r.missingOrState(ctx, match.ID, "MATCH_NOT_UPCOMING", "only upcoming matches can be rescheduled")
	}
	return nil
}

func (r *matchRepository) TransitionStatus(ctx context.Context, id uint64, from model.MatchStatus, result MatchResult) error {
	res := r.db.WithContext(ctx).Model(&model.Match{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":          result.Status,
			"toss_winner_id":  result.TossWinnerID,
			"match_winner_id": result.MatchWinnerID,
			"completed_at":    result.CompletedAt,
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error, "MATCH_STATUS_UPDATE", "")
	}
	if res.RowsAffected == 0 {
		return r.missingOrState(ctx, id, "MATCH_STATUS_CHANGED",
			fmt.Sprintf("match %d is no longer %s", id, from))
	}
	return nil
}

func (r *matchRepository) SetResult(ctx context.Context, id uint64, tossWinnerID, matchWinnerID *uint64) error {
	res := r.db.WithContext(ctx).Model(&model.Match{}).
		Where("id = ? AND status = ?", id, model.MatchCompleted).
		Updates(map[string]interface{}{
			"toss_winner_id":  tossWinnerID,
			"match_winner_id": matchWinnerID,
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error, "MATCH_RESULT_UPDATE", "")
	}
	if res.RowsAffected == 0 {
		return r.missingOrState(ctx, id, "MATCH_NOT_COMPLETED", "only completed matches can be corrected")
	}
	return nil
}

func (r *matchRepository) ListDueUpcoming(ctx context.Context, now time.Time, limit int) ([]*model.Match, error) {
	if limit <= 0 {
		limit = 100
	}
	var matches []*model.Match
	if err := r.db.WithContext(ctx).
		Where("status = ? AND start_time <= ?", model.MatchUpcoming, now).
		Order("start_time ASC").
		Limit(limit).
		Find(&matches).Error; err != nil {
		return nil, translate(err, "MATCH_LIST_DUE", "")
	}
	return matches, nil
}

func (r *matchRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Match
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return translate(err, "MATCH_NOT_FOUND", fmt.Sprintf("match %d not found", id))
		}
		if m.Status != model.MatchUpcoming {
			return apperr.InvalidState("MATCH_NOT_UPCOMING", "only upcoming matches can be deleted")
		}
		var n int64
		if err := tx.Model(&model.Prediction{}).Where("match_id = ?", id).Count(&n).Error; err != nil {
			return translate(err, "MATCH_DELETE", "")
		}
		if n > 0 {
			return apperr.Conflict("MATCH_HAS_PREDICTIONS", fmt.Sprintf("match %d already has %d predictions", id, n))
		}
		return translate(tx.Delete(&m).Error, "MATCH_DELETE", "")
	})
}

// missingOrState 条件更新未命中时区分"不存在"和"状态不符"
func (r *matchRepository) missingOrState(ctx context.Context, id uint64, code, msg string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return apperr.InvalidState(code, msg)
}
