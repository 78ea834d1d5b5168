package service

import (
	"context"
	"fmt"
	"time"

	"CricketPredict/internal/apperr"
	"CricketPredict/internal/model"
	"CricketPredict/internal/repository"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// MatchInput 创建/修改比赛的入参
type MatchInput struct {
	TournamentID uint64    `json:"tournament_id"`
	Team1ID      uint64    `json:"team1_id"`
	Team2ID      uint64    `json:"team2_id"`
	Venue        string    `json:"venue"`
	StartTime    time.Time `json:"start_time"`
}

// StatusChange 状态流转结果；流转到 completed 时附带计分汇总
type StatusChange struct {
	Match *model.Match             `json:"match"`
	Score *repository.ScoreSummary `json:"score,omitempty"`
}

// MatchService 比赛生命周期
type MatchService struct {
	matchRepo      repository.MatchRepository
	teamRepo       repository.TeamRepository
	tournamentRepo repository.TournamentRepository
	scoring        *ScoringService
	clock          clockwork.Clock
	logger         *logrus.Logger
}

// NewMatchService 创建比赛服务
func NewMatchService(
	matchRepo repository.MatchRepository,
	teamRepo repository.TeamRepository,
	tournamentRepo repository.TournamentRepository,
	scoring *ScoringService,
	clock clockwork.Clock,
	logger *logrus.Logger,
) *MatchService {
	return &MatchService{
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		scoring:        scoring,
		clock:          clock,
		logger:         logger,
	}
}

func (s *MatchService) Create(ctx context.Context, in MatchInput) (*model.Match, error) {
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}
	m := &model.Match{
		MatchUUID:    uuid.NewString(),
		TournamentID: in.TournamentID,
		Team1ID:      in.Team1ID,
		Team2ID:      in.Team2ID,
		Venue:        in.Venue,
		StartTime:    in.StartTime,
		Status:       model.MatchUpcoming,
	}
	if err := s.matchRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"match_id": m.ID, "tournament_id": m.TournamentID}).Info("比赛已创建")
	return m, nil
}

func (s *MatchService) Get(ctx context.Context, id uint64) (*model.Match, error) {
	return s.matchRepo.GetByID(ctx, id)
}

func (s *MatchService) List(ctx context.Context, filter repository.MatchFilter, page, pageSize int) ([]*model.Match, int64, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, apperr.Validation("INVALID_STATUS", fmt.Sprintf("unknown match status %q", filter.Status))
	}
	return s.matchRepo.List(ctx, filter, page, pageSize)
}

// Update 只允许修改 upcoming 比赛的赛程信息，所属赛事不可变
func (s *MatchService) Update(ctx context.Context, id uint64, in MatchInput) (*model.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.TournamentID = m.TournamentID
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}
	m.Team1ID, m.Team2ID, m.Venue, m.StartTime = in.Team1ID, in.Team2ID, in.Venue, in.StartTime
	if err := s.matchRepo.UpdateSchedule(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MatchService) Delete(ctx context.Context, id uint64) error {
	return s.matchRepo.Delete(ctx, id)
}

// UpdateStatus 状态流转；进入 completed 时写入赛果并立即计分
func (s *MatchService) UpdateStatus(ctx context.Context, id uint64, status model.MatchStatus, tossWinnerID, matchWinnerID *uint64) (*StatusChange, error) {
	if !status.Valid() {
		return nil, apperr.Validation("INVALID_STATUS", fmt.Sprintf("unknown match status %q", status))
	}
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.Status.CanTransitionTo(status) {
		return nil, apperr.InvalidState("INVALID_TRANSITION", fmt.Sprintf("match %d cannot move from %s to %s", id, m.Status, status))
	}

	result := repository.MatchResult{Status: status}
	if status == model.MatchCompleted {
		if err := validateWinners(m, tossWinnerID, matchWinnerID); err != nil {
			return nil, err
		}
		now := s.clock.Now()
		result.TossWinnerID, result.MatchWinnerID, result.CompletedAt = tossWinnerID, matchWinnerID, &now
	} else if tossWinnerID != nil || matchWinnerID != nil {
		return nil, apperr.Validation("WINNER_NOT_ALLOWED", "winners can only be set when completing a match")
	}

	if err := s.matchRepo.TransitionStatus(ctx, id, m.Status, result); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"match_id": id, "from": m.Status, "to": status}).Info("比赛状态更新")

	m.Status, m.TossWinnerID, m.MatchWinnerID, m.CompletedAt = status, result.TossWinnerID, result.MatchWinnerID, result.CompletedAt
	change := &StatusChange{Match: m}
	if status != model.MatchCompleted {
		return change, nil
	}

	// 状态已落库；计分失败时可通过 /score 重试（幂等）
	summary, err := s.scoring.CalculatePoints(ctx, id)
	if err != nil {
		return nil, err
	}
	change.Score = summary
	return change, nil
}

// CorrectResult 更正已完赛比赛的赛果并重新计分，过期积分以 -1 流水撤销
func (s *MatchService) CorrectResult(ctx context.Context, id uint64, tossWinnerID, matchWinnerID *uint64) (*repository.ScoreSummary, error) {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Status != model.MatchCompleted {
		return nil, apperr.InvalidState("MATCH_NOT_COMPLETED", fmt.Sprintf("match %d is %s, only completed matches can be corrected", id, m.Status))
	}
	if err := validateWinners(m, tossWinnerID, matchWinnerID); err != nil {
		return nil, err
	}
	if err := s.matchRepo.SetResult(ctx, id, tossWinnerID, matchWinnerID); err != nil {
		return nil, err
	}
	s.logger.WithField("match_id", id).Info("赛果已更正，重新计分")
	return s.scoring.CalculatePoints(ctx, id)
}

// StartDueMatches 已到开赛时间的 upcoming 比赛置为 ongoing，返回成功更新的场数
func (s *MatchService) StartDueMatches(ctx context.Context) (int, error) {
	due, err := s.matchRepo.ListDueUpcoming(ctx, s.clock.Now(), 200)
	if err != nil {
		return 0, err
	}
	started := 0
	for _, m := range due {
		err := s.matchRepo.TransitionStatus(ctx, m.ID, model.MatchUpcoming, repository.MatchResult{Status: model.MatchOngoing})
		if err != nil {
			// 管理员可能已手动改了状态
			if apperr.Is(err, apperr.TypeInvalidState) {
				continue
			}
			s.logger.WithError(err).WithField("match_id", m.ID).Warn("StartDueMatches")
			continue
		}
		started++
	}
	return started, nil
}

func (s *MatchService) validateInput(ctx context.Context, in MatchInput) error {
	if in.Team1ID == 0 || in.Team2ID == 0 {
		return apperr.Validation("TEAM_REQUIRED", "team1_id and team2_id are required")
	}
	if in.Team1ID == in.Team2ID {
		return apperr.Validation("SAME_TEAMS", "a match needs two different teams")
	}
	if in.StartTime.IsZero() {
		return apperr.Validation("START_TIME_REQUIRED", "start_time is required")
	}
	if _, err := s.tournamentRepo.GetByID(ctx, in.TournamentID); err != nil {
		return err
	}
	for _, teamID := range []uint64{in.Team1ID, in.Team2ID} {
		if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			return err
		}
	}
	return nil
}

// validateWinners 赛果两项都可为空（不计分）；填写的必须是参赛队之一
func validateWinners(m *model.Match, tossWinnerID, matchWinnerID *uint64) error {
	if tossWinnerID != nil && !m.HasTeam(*tossWinnerID) {
		return apperr.Validation("TOSS_WINNER_INVALID", fmt.Sprintf("team %d is not playing match %d", *tossWinnerID, m.ID))
	}
	if matchWinnerID != nil && !m.HasTeam(*matchWinnerID) {
		return apperr.Validation("MATCH_WINNER_INVALID", fmt.Sprintf("team %d is not playing match %d", *matchWinnerID, m.ID))
	}
	return nil
}
