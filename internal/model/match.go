package model

import (
	"time"
)

// Match 对应 matches 表。toss_winner_id / match_winner_id 仅在 status=completed 时非空
type Match struct {
	ID            uint64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MatchUUID     string      `gorm:"column:match_uuid;type:varchar(64);uniqueIndex;not null" json:"match_uuid"`
	TournamentID  uint64      `gorm:"column:tournament_id;type:bigint;not null;index" json:"tournament_id"`
	Team1ID       uint64      `gorm:"column:team1_id;type:bigint;not null" json:"team1_id"`
	Team2ID       uint64      `gorm:"column:team2_id;type:bigint;not null" json:"team2_id"`
	Venue         string      `gorm:"column:venue;type:varchar(256)" json:"venue"`
	StartTime     time.Time   `gorm:"column:start_time;type:timestamp;not null;index" json:"start_time"`
	Status        MatchStatus `gorm:"column:status;type:varchar(16);default:'upcoming';index" json:"status"`
	TossWinnerID  *uint64     `gorm:"column:toss_winner_id;type:bigint" json:"toss_winner_id"`
	MatchWinnerID *uint64     `gorm:"column:match_winner_id;type:bigint" json:"match_winner_id"`
	CompletedAt   *time.Time  `gorm:"column:completed_at;type:timestamp" json:"completed_at"`
	CreatedAt     time.Time   `gorm:"column:created_at;type:timestamp;default:now()" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"column:updated_at;type:timestamp;default:now()" json:"updated_at"`
}

func (Match) TableName() string { return "matches" }

// HasTeam 判断 teamID 是否为参赛队之一
func (m *Match) HasTeam(teamID uint64) bool {
	return teamID != 0 && (teamID == m.Team1ID || teamID == m.Team2ID)
}

// JudgePicks 判分规则：掷币、胜者各自独立比较，赛果为空的一项不算猜中
func JudgePicks(tossPick *uint64, matchPick uint64, tossWinner, matchWinner *uint64) (tossCorrect, matchCorrect bool) {
	tossCorrect = tossPick != nil && tossWinner != nil && *tossPick == *tossWinner
	matchCorrect = matchWinner != nil && matchPick == *matchWinner
	return tossCorrect, matchCorrect
}

// Prediction 对应 predictions 表，(user_id, match_id) 唯一，重复提交覆盖
type Prediction struct {
	ID                     uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID                 uint64     `gorm:"column:user_id;type:bigint;not null;uniqueIndex:uq_prediction_user_match" json:"user_id"`
	MatchID                uint64     `gorm:"column:match_id;type:bigint;not null;uniqueIndex:uq_prediction_user_match;index" json:"match_id"`
	PredictedTossWinnerID  *uint64    `gorm:"column:predicted_toss_winner_id;type:bigint" json:"predicted_toss_winner_id"`
	PredictedMatchWinnerID uint64     `gorm:"column:predicted_match_winner_id;type:bigint;not null" json:"predicted_match_winner_id"`
	PointsEarned           int        `gorm:"column:points_earned;type:int;default:0;not null" json:"points_earned"`
	ScoredAt               *time.Time `gorm:"column:scored_at;type:timestamp" json:"scored_at"`
	CreatedAt              time.Time  `gorm:"column:created_at;type:timestamp;default:now()" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"column:updated_at;type:timestamp;default:now()" json:"updated_at"`
}

func (Prediction) TableName() string { return "predictions" }
