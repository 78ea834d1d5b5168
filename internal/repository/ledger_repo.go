package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"CricketPredict/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PredictionScore 单条预测的判分结果
type PredictionScore struct {
	PredictionID uint64
	UserID       uint64
	TossCorrect  bool
	MatchCorrect bool
}

// Total 0..2
func (s PredictionScore) Total() int {
	n := 0
	if s.TossCorrect {
		n++
	}
	if s.MatchCorrect {
		n++
	}
	return n
}

// MatchScorer 在事务内、比赛行加锁之后对全部预测判分；返回错误则整体回滚
type MatchScorer func(match *model.Match, predictions []*model.Prediction) ([]PredictionScore, error)

// ScoreSummary 一次计分的结果
type ScoreSummary struct {
	MatchID           uint64 `json:"match_id"`
	PredictionsScored int    `json:"predictions_scored"`
	PointsAwarded     int    `json:"points_awarded"`
	PointsRevoked     int    `json:"points_revoked"`
}

// PointsDrift 用户缓存积分与流水合计不一致的记录
type PointsDrift struct {
	UserID uint64 `json:"user_id"`
	Cached int64  `json:"cached"`
	Ledger int64  `json:"ledger"`
}

// LedgerRepository 积分流水仓储，也是唯一修改 users.points 的地方
type LedgerRepository interface {
	// ApplyMatchScores 单事务：锁比赛行 -> 判分 -> 写 points_earned -> 按差额追加流水 -> 更新用户积分
	ApplyMatchScores(ctx context.Context, matchID uint64, scorer MatchScorer) (*ScoreSummary, error)
	ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.PointsLedgerEntry, int64, error)
	SumByUser(ctx context.Context, userID uint64) (int64, error)
	// ReconcileUserPoints 以流水为准重写漂移的 users.points，返回检查人数与漂移明细
	ReconcileUserPoints(ctx context.Context) (int, []PointsDrift, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository 创建 LedgerRepository 实例
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

type ledgerKey struct {
	UserID uint64
	Kind   model.LedgerKind
}

type ledgerNetRow struct {
	UserID uint64
	Kind   model.LedgerKind
	Net    int
}

func (r *ledgerRepository) ApplyMatchScores(ctx context.Context, matchID uint64, scorer MatchScorer) (*ScoreSummary, error) {
	summary := &ScoreSummary{MatchID: matchID}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 锁比赛行，同一场比赛的并发计分在此串行
		var match model.Match
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", matchID).
			First(&match).Error; err != nil {
			return translate(err, "MATCH_NOT_FOUND", fmt.Sprintf("match %d not found", matchID))
		}

		var predictions []*model.Prediction
		if err := tx.Where("match_id = ?", matchID).Order("id ASC").Find(&predictions).Error; err != nil {
			return translate(err, "PREDICTION_LIST", "")
		}

		scores, err := scorer(&match, predictions)
		if err != nil {
			return err
		}

		// 2. 已入账的净值
		var netRows []ledgerNetRow
		if err := tx.Model(&model.PointsLedgerEntry{}).
			Select("user_id, kind, COALESCE(SUM(points), 0) AS net").
			Where("match_id = ?", matchID).
			Group("user_id, kind").
			Scan(&netRows).Error; err != nil {
			return translate(err, "LEDGER_NET", "")
		}
		net := make(map[ledgerKey]int, len(netRows))
		for _, row := range netRows {
			net[ledgerKey{UserID: row.UserID, Kind: row.Kind}] = row.Net
		}

		now := time.Now()
		var entries []*model.PointsLedgerEntry
		userDelta := make(map[uint64]int64)

		for _, sc := range scores {
			if err := tx.Model(&model.Prediction{}).
				Where("id = ?", sc.PredictionID).
				Updates(map[string]interface{}{
					"points_earned": sc.Total(),
					"scored_at":     now,
					"updated_at":    now,
				}).Error; err != nil {
				return translate(err, "PREDICTION_SCORE", "")
			}
			summary.PredictionsScored++

			sources := []struct {
				kind    model.LedgerKind
				correct bool
			}{
				{model.LedgerKindToss, sc.TossCorrect},
				{model.LedgerKindMatch, sc.MatchCorrect},
			}
			for _, src := range sources {
				desired := 0
				if src.correct {
					desired = 1
				}
				delta := desired - net[ledgerKey{UserID: sc.UserID, Kind: src.kind}]
				if delta == 0 {
					continue
				}
				reason := model.CreditReason(src.kind)
				if delta > 0 {
					summary.PointsAwarded += delta
				} else {
					reason = model.RevokeReason(src.kind)
					summary.PointsRevoked += -delta
				}
				entries = append(entries, &model.PointsLedgerEntry{
					EntryUUID:    uuid.NewString(),
					UserID:       sc.UserID,
					MatchID:      matchID,
					PredictionID: sc.PredictionID,
					Kind:         src.kind,
					Points:       delta,
					Reason:       reason,
					Metadata:     ledgerMetadata(&match),
					CreatedAt:    now,
				})
				userDelta[sc.UserID] += int64(delta)
			}
		}

		if len(entries) == 0 {
			return nil
		}
		if err := tx.Create(&entries).Error; err != nil {
			return translate(err, "LEDGER_APPEND", "")
		}

		// 3. 按 user_id 升序更新，避免多场比赛并发计分时互相死锁
		userIDs := make([]uint64, 0, len(userDelta))
		for id, d := range userDelta {
			if d != 0 {
				userIDs = append(userIDs, id)
			}
		}
		sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })
		for _, id := range userIDs {
			if err := tx.Model(&model.User{}).
				Where("id = ?", id).
				UpdateColumn("points", gorm.Expr("points + ?", userDelta[id])).Error; err != nil {
				return translate(err, "USER_POINTS_UPDATE", "")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func ledgerMetadata(m *model.Match) datatypes.JSON {
	b, err := json.Marshal(map[string]interface{}{
		"match_uuid":      m.MatchUUID,
		"toss_winner_id":  m.TossWinnerID,
		"match_winner_id": m.MatchWinnerID,
	})
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func (r *ledgerRepository) ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.PointsLedgerEntry, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	db := r.db.WithContext(ctx).Model(&model.PointsLedgerEntry{}).Where("user_id = ?", userID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "LEDGER_LIST", "")
	}
	var entries []*model.PointsLedgerEntry
	if err := db.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&entries).Error; err != nil {
		return nil, 0, translate(err, "LEDGER_LIST", "")
	}
	return entries, total, nil
}

func (r *ledgerRepository) SumByUser(ctx context.Context, userID uint64) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&model.PointsLedgerEntry{}).
		Select("COALESCE(SUM(points), 0)").
		Where("user_id = ?", userID).
		Scan(&sum).Error
	return sum, translate(err, "LEDGER_SUM", "")
}

type userLedgerRow struct {
	ID          uint64
	Points      int64
	LedgerTotal int64
}

func (r *ledgerRepository) ReconcileUserPoints(ctx context.Context) (int, []PointsDrift, error) {
	var checked int
	var drifts []PointsDrift

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// GROUP BY 不能与 FOR UPDATE 同用，先单独锁用户行，防止与计分事务交错
		var lockedIDs []uint64
		if err := tx.Model(&model.User{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Order("id ASC").
			Pluck("id", &lockedIDs).Error; err != nil {
			return translate(err, "RECONCILE_LOCK", "")
		}

		var rows []userLedgerRow
		if err := tx.Table("users u").
			Select("u.id, u.points, COALESCE(SUM(l.points), 0) AS ledger_total").
			Joins("LEFT JOIN points_ledger l ON l.user_id = u.id").
			Group("u.id, u.points").
			Order("u.id ASC").
			Scan(&rows).Error; err != nil {
			return translate(err, "RECONCILE_SCAN", "")
		}
		checked = len(rows)
		for _, row := range rows {
			if row.Points == row.LedgerTotal {
				continue
			}
			if err := tx.Model(&model.User{}).
				Where("id = ?", row.ID).
				UpdateColumn("points", row.LedgerTotal).Error; err != nil {
				return translate(err, "RECONCILE_UPDATE", "")
			}
			drifts = append(drifts, PointsDrift{UserID: row.ID, Cached: row.Points, Ledger: row.LedgerTotal})
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return checked, drifts, nil
}
