package repository

import (
	"context"
	"fmt"
	"time"

	"CricketPredict/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户持久化
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*model.User, error)
	MarkVerified(ctx context.Context, id uint64) error
	// ListForLeaderboard 全部用户（按 id 升序），供排行榜初始化
	ListForLeaderboard(ctx context.Context) ([]*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, "USER_CREATE", "")
}

func (r *userRepository) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err, "USER_NOT_FOUND", fmt.Sprintf("user %d not found", id))
	}
	return &u, nil
}

func (r *userRepository) GetByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("verification_token = ?", token).First(&u).Error; err != nil {
		return nil, translate(err, "VERIFICATION_TOKEN_NOT_FOUND", "verification token not found")
	}
	return &u, nil
}

func (r *userRepository) MarkVerified(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_verified":        true,
			"verification_token": nil,
			"updated_at":         time.Now(),
		}).Error
	return translate(err, "USER_VERIFY", "")
}

func (r *userRepository) ListForLeaderboard(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	if err := r.db.WithContext(ctx).
		Select("id", "username", "display_name", "points").
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, translate(err, "USER_LIST", "")
	}
	return users, nil
}
