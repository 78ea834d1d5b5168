package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"CricketPredict/internal/apperr"
	"CricketPredict/internal/interfaces"
	"CricketPredict/internal/model"
	"CricketPredict/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

// RegisterInput 注册入参
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// UserService 用户注册、邮箱验证与积分流水查询
type UserService struct {
	userRepo    repository.UserRepository
	ledgerRepo  repository.LedgerRepository
	mailer      interfaces.Mailer
	frontendURL string
	logger      *logrus.Logger
}

// NewUserService 创建用户服务，frontendURL 用于拼接邮箱验证链接
func NewUserService(
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	mailer interfaces.Mailer,
	frontendURL string,
	logger *logrus.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		ledgerRepo:  ledgerRepo,
		mailer:      mailer,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		logger:      logger,
	}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if len(in.Username) < 3 || len(in.Username) > 64 {
		return nil, apperr.Validation("USERNAME_INVALID", "username must be 3-64 characters")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, apperr.Validation("EMAIL_INVALID", "email is not a valid address")
	}
	if len(in.Password) < minPasswordLen {
		return nil, apperr.Validation("PASSWORD_TOO_SHORT", fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	token, err := newVerificationToken()
	if err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		displayName = in.Username
	}
	u := &model.User{
		Username:          in.Username,
		Email:             in.Email,
		PasswordHash:      string(hash),
		DisplayName:       displayName,
		VerificationToken: &token,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if apperr.Is(err, apperr.TypeConflict) {
			return nil, apperr.Conflict("USER_EXISTS", "username or email already registered")
		}
		return nil, err
	}

	// 发信失败不影响注册，用户可联系管理员重新验证
	verifyURL := s.frontendURL + "/verify-email?token=" + url.QueryEscape(token)
	if err := s.mailer.SendVerification(ctx, u.Email, verifyURL); err != nil {
		s.logger.WithError(err).WithField("user_id", u.ID).Warn("send verification email failed")
	}
	return u, nil
}

func (s *UserService) Verify(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return apperr.Validation("TOKEN_REQUIRED", "token is required")
	}
	u, err := s.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		return err
	}
	if err := s.userRepo.MarkVerified(ctx, u.ID); err != nil {
		return err
	}
	s.logger.WithField("user_id", u.ID).Info("邮箱验证成功")
	return nil
}

func (s *UserService) Get(ctx context.Context, id uint64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Ledger 用户积分流水，最新在前
func (s *UserService) Ledger(ctx context.Context, userID uint64, page, pageSize int) ([]*model.PointsLedgerEntry, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.ledgerRepo.ListByUser(ctx, userID, page, pageSize)
}

func newVerificationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
