package repository

import (
	"context"
	"time"

	"CricketPredict/internal/model"

	"gorm.io/gorm"
)

// OutcomeFilter 排行榜读取条件
type OutcomeFilter struct {
	TournamentID uint64     // 0 表示全部赛事
	Since        *time.Time // nil 表示不限时间（按比赛 start_time）
}

// PredictionOutcome 一条预测及其所属比赛的赛果，排行榜在内存中聚合
type PredictionOutcome struct {
	UserID                 uint64
	MatchID                uint64
	PredictedTossWinnerID  *uint64
	PredictedMatchWinnerID uint64
	TossWinnerID           *uint64
	MatchWinnerID          *uint64
	PointsEarned           int
}

// LeaderboardRepository 排行榜只读查询
type LeaderboardRepository interface {
	// ListCompletedOutcomes 只返回 status=completed 的比赛下的预测
	ListCompletedOutcomes(ctx context.Context, filter OutcomeFilter) ([]*PredictionOutcome, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) ListCompletedOutcomes(ctx context.Context, filter OutcomeFilter) ([]*PredictionOutcome, error) {
	db := r.db.WithContext(ctx).Table("predictions p").
		Select("p.user_id, p.match_id, p.predicted_toss_winner_id, p.predicted_match_winner_id, p.points_earned, " +
			"m.toss_winner_id, m.match_winner_id").
		Joins("JOIN matches m ON m.id = p.match_id").
		Where("m.status = ?", model.MatchCompleted)

	if filter.TournamentID != 0 {
		db = db.Where("m.tournament_id = ?", filter.TournamentID)
	}
	if filter.Since != nil {
		db = db.Where("m.start_time >= ?", *filter.Since)
	}

	var rows []*PredictionOutcome
	if err := db.Order("p.user_id ASC, p.id ASC").Scan(&rows).Error; err != nil {
		return nil, translate(err, "LEADERBOARD_OUTCOMES", "")
	}
	return rows, nil
}
