package service

import (
	"context"
	"fmt"
	"strings"

	"CricketPredict/internal/apperr"
	"CricketPredict/internal/model"
	"CricketPredict/internal/repository"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
)

// TeamInput 球队入参
type TeamInput struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	LogoURL   string `json:"logo_url"`
}

// TeamService 球队管理
type TeamService struct {
	teamRepo repository.TeamRepository
	logger   *logrus.Logger
}

// NewTeamService 创建球队服务
func NewTeamService(teamRepo repository.TeamRepository, logger *logrus.Logger) *TeamService {
	return &TeamService{teamRepo: teamRepo, logger: logger}
}

func (s *TeamService) Create(ctx context.Context, in TeamInput) (*model.Team, error) {
	t, err := buildTeam(in)
	if err != nil {
		return nil, err
	}
	if err := s.teamRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TeamService) List(ctx context.Context) ([]*model.Team, error) {
	return s.teamRepo.List(ctx)
}

func (s *TeamService) Get(ctx context.Context, id uint64) (*model.Team, error) {
	return s.teamRepo.GetByID(ctx, id)
}

func (s *TeamService) Update(ctx context.Context, id uint64, in TeamInput) (*model.Team, error) {
	t, err := buildTeam(in)
	if err != nil {
		return nil, err
	}
	t.ID = id
	if err := s.teamRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.teamRepo.GetByID(ctx, id)
}

// Delete 已有比赛引用的球队不能删除
func (s *TeamService) Delete(ctx context.Context, id uint64) error {
	n, err := s.teamRepo.CountMatches(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict("TEAM_IN_USE", fmt.Sprintf("team %d is referenced by %d matches", id, n))
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("team_id", id).Info("球队已删除")
	return nil
}

func buildTeam(in TeamInput) (*model.Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("TEAM_NAME_REQUIRED", "name is required")
	}
	return &model.Team{
		Name:      name,
		ShortName: strings.ToUpper(strings.TrimSpace(in.ShortName)),
		Slug:      slug.Make(name),
		LogoURL:   strings.TrimSpace(in.LogoURL),
	}, nil
}
