package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"CricketPredict/internal/apperr"
	"CricketPredict/internal/model"
	"CricketPredict/internal/repository"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Timeframe 排行榜时间窗口（滚动窗口，按比赛 start_time 过滤）
type Timeframe string

const (
	TimeframeAllTime   Timeframe = "all-time"
	TimeframeThisWeek  Timeframe = "this-week"
	TimeframeThisMonth Timeframe = "this-month"
	TimeframeThisYear  Timeframe = "this-year"
)

// ParseTimeframe 空串视为 all-time
func ParseTimeframe(s string) (Timeframe, bool) {
	switch Timeframe(s) {
	case "", TimeframeAllTime:
		return TimeframeAllTime, true
	case TimeframeThisWeek, TimeframeThisMonth, TimeframeThisYear:
		return Timeframe(s), true
	}
	return "", false
}

// Since 返回窗口起点；all-time 返回 nil
func (tf Timeframe) Since(now time.Time) *time.Time {
	var since time.Time
	switch tf {
	case TimeframeThisWeek:
		since = now.AddDate(0, 0, -7)
	case TimeframeThisMonth:
		since = now.AddDate(0, -1, 0)
	case TimeframeThisYear:
		since = now.AddDate(-1, 0, 0)
	default:
		return nil
	}
	return &since
}

// LeaderboardEntry 排行榜一行
type LeaderboardEntry struct {
	ID                 uint64 `json:"id"`
	Username           string `json:"username"`
	DisplayName        string `json:"displayName"`
	Points             int64  `json:"points"`
	CorrectPredictions int    `json:"correctPredictions"`
	TotalMatches       int    `json:"totalMatches"`
}

// LeaderboardService 排行榜聚合，每次请求重新计算
type LeaderboardService struct {
	userRepo        repository.UserRepository
	tournamentRepo  repository.TournamentRepository
	leaderboardRepo repository.LeaderboardRepository
	clock           clockwork.Clock
	logger          *logrus.Logger
}

// NewLeaderboardService 创建排行榜服务，clock 决定时间窗口的起点
func NewLeaderboardService(
	userRepo repository.UserRepository,
	tournamentRepo repository.TournamentRepository,
	leaderboardRepo repository.LeaderboardRepository,
	clock clockwork.Clock,
	logger *logrus.Logger,
) *LeaderboardService {
	return &LeaderboardService{
		userRepo:        userRepo,
		tournamentRepo:  tournamentRepo,
		leaderboardRepo: leaderboardRepo,
		clock:           clock,
		logger:          logger,
	}
}

// GetLeaderboard 全站排行：积分取用户累计积分，包含没有任何预测的用户
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, timeframe string) ([]*LeaderboardEntry, error) {
	tf, ok := ParseTimeframe(timeframe)
	if !ok {
		return nil, apperr.Validation("INVALID_TIMEFRAME", fmt.Sprintf("unknown timeframe %q", timeframe))
	}

	users, err := s.userRepo.ListForLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	outcomes, err := s.leaderboardRepo.ListCompletedOutcomes(ctx, repository.OutcomeFilter{
		Since: tf.Since(s.clock.Now()),
	})
	if err != nil {
		return nil, err
	}

	entries := aggregateLeaderboard(users, outcomes, false)
	rankLeaderboard(entries)
	return entries, nil
}

// GetTournamentLeaderboard 赛事排行：积分为该赛事内 points_earned 之和，只保留有预测的用户。
// 无法识别的 timeframe 按 all-time 处理
func (s *LeaderboardService) GetTournamentLeaderboard(ctx context.Context, tournamentID uint64, timeframe string) ([]*LeaderboardEntry, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	tf, ok := ParseTimeframe(timeframe)
	if !ok {
		s.logger.WithField("timeframe", timeframe).Debug("unknown tournament timeframe, using all-time")
		tf = TimeframeAllTime
	}

	users, err := s.userRepo.ListForLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	outcomes, err := s.leaderboardRepo.ListCompletedOutcomes(ctx, repository.OutcomeFilter{
		TournamentID: tournamentID,
		Since:        tf.Since(s.clock.Now()),
	})
	if err != nil {
		return nil, err
	}

	all := aggregateLeaderboard(users, outcomes, true)
	entries := make([]*LeaderboardEntry, 0, len(all))
	for _, e := range all {
		if e.TotalMatches > 0 {
			entries = append(entries, e)
		}
	}
	rankLeaderboard(entries)
	return entries, nil
}

// aggregateLeaderboard 每个用户一行；tournamentScoped 时积分从 0 开始累加 points_earned
func aggregateLeaderboard(users []*model.User, outcomes []*repository.PredictionOutcome, tournamentScoped bool) []*LeaderboardEntry {
	entries := make([]*LeaderboardEntry, 0, len(users))
	byUser := make(map[uint64]*LeaderboardEntry, len(users))
	for _, u := range users {
		e := &LeaderboardEntry{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
		}
		if !tournamentScoped {
			e.Points = u.Points
		}
		entries = append(entries, e)
		byUser[u.ID] = e
	}

	for _, o := range outcomes {
		e, ok := byUser[o.UserID]
		if !ok {
			continue
		}
		e.TotalMatches++
		toss, winner := model.JudgePicks(o.PredictedTossWinnerID, o.PredictedMatchWinnerID, o.TossWinnerID, o.MatchWinnerID)
		if toss {
			e.CorrectPredictions++
		}
		if winner {
			e.CorrectPredictions++
		}
		if tournamentScoped {
			e.Points += int64(o.PointsEarned)
		}
	}
	return entries
}

// rankLeaderboard 积分 -> 命中率 -> 场次，均降序；最后按用户 id 升序保证结果稳定
func rankLeaderboard(entries []*LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return rankedBefore(entries[i], entries[j])
	})
}

func rankedBefore(a, b *LeaderboardEntry) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	// 命中率 correct/(matches*2)，交叉相乘避免浮点误差；0 场视为 0
	if c := compareRatio(a, b); c != 0 {
		return c > 0
	}
	if a.TotalMatches != b.TotalMatches {
		return a.TotalMatches > b.TotalMatches
	}
	return a.ID < b.ID
}

func compareRatio(a, b *LeaderboardEntry) int {
	switch {
	case a.TotalMatches == 0 && b.TotalMatches == 0:
		return 0
	case a.TotalMatches == 0:
		if b.CorrectPredictions == 0 {
			return 0
		}
		return -1
	case b.TotalMatches == 0:
		if a.CorrectPredictions == 0 {
			return 0
		}
		return 1
	}
	left := int64(a.CorrectPredictions) * int64(b.TotalMatches)
	right := int64(b.CorrectPredictions) * int64(a.TotalMatches)
	switch {
	case left > right:
		return 1
	case left < right:
		return -1
	}
	return 0
}
