package service

import (
	"context"
	"strings"
	"time"

	"CricketPredict/internal/apperr"
	"CricketPredict/internal/model"
	"CricketPredict/internal/repository"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
)

// TournamentInput 赛事入参
type TournamentInput struct {
	Name                string     `json:"name"`
	Season              string     `json:"season"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	IsPremium           bool       `json:"is_premium"`
	HideTossPredictions bool       `json:"hide_toss_predictions"`
}

// TournamentService 赛事管理
type TournamentService struct {
	tournamentRepo repository.TournamentRepository
	logger         *logrus.Logger
}

// NewTournamentService 创建赛事服务
func NewTournamentService(tournamentRepo repository.TournamentRepository, logger *logrus.Logger) *TournamentService {
	return &TournamentService{tournamentRepo: tournamentRepo, logger: logger}
}

func (s *TournamentService) Create(ctx context.Context, in TournamentInput) (*model.Tournament, error) {
	t, err := buildTournament(in)
	if err != nil {
		return nil, err
	}
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"tournament_id": t.ID, "slug": t.Slug}).Info("赛事已创建")
	return t, nil
}

func (s *TournamentService) List(ctx context.Context) ([]*model.Tournament, error) {
	return s.tournamentRepo.List(ctx)
}

func (s *TournamentService) Get(ctx context.Context, id uint64) (*model.Tournament, error) {
	return s.tournamentRepo.GetByID(ctx, id)
}

func (s *TournamentService) Update(ctx context.Context, id uint64, in TournamentInput) (*model.Tournament, error) {
	t, err := buildTournament(in)
	if err != nil {
		return nil, err
	}
	t.ID = id
	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.tournamentRepo.GetByID(ctx, id)
}

func (s *TournamentService) Delete(ctx context.Context, id uint64) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("tournament_id", id).Info("赛事已删除")
	return nil
}

// buildTournament slug 由名称+赛季生成，如 "IPL 2025" -> ipl-2025
func buildTournament(in TournamentInput) (*model.Tournament, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("TOURNAMENT_NAME_REQUIRED", "name is required")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, apperr.Validation("TOURNAMENT_DATES_INVALID", "end_date is before start_date")
	}
	season := strings.TrimSpace(in.Season)
	return &model.Tournament{
		Name:                name,
		Slug:                slug.Make(strings.TrimSpace(name + " " + season)),
		Season:              season,
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		IsPremium:           in.IsPremium,
		HideTossPredictions: in.HideTossPredictions,
	}, nil
}
