package model

import (
	"time"
)

type User struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id"`
	Username          string    `gorm:"column:username;type:varchar(64);uniqueIndex;not null;comment:登录名" json:"username"`
	Email             string    `gorm:"column:email;type:varchar(256);uniqueIndex;not null;comment:邮箱" json:"email"`
	PasswordHash      string    `gorm:"column:password_hash;type:varchar(128);not null;comment:bcrypt哈希" json:"-"`
	DisplayName       string    `gorm:"column:display_name;type:varchar(128);comment:展示名" json:"display_name"`
	Points            int64     `gorm:"column:points;type:bigint;default:0;not null;comment:累计积分（积分流水的缓存）" json:"points"`
	IsVerified        bool      `gorm:"column:is_verified;type:boolean;default:false;comment:邮箱是否验证" json:"is_verified"`
	VerificationToken *string   `gorm:"column:verification_token;type:varchar(64);index;comment:邮箱验证token" json:"-"`
	IsAdmin           bool      `gorm:"column:is_admin;type:boolean;default:false;comment:是否管理员" json:"is_admin"`
	CreatedAt         time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间" json:"updated_at"`
}

type Team struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(128);uniqueIndex;not null;comment:队名" json:"name"`
	ShortName string    `gorm:"column:short_name;type:varchar(16);comment:简称，如 IND/AUS" json:"short_name"`
	Slug      string    `gorm:"column:slug;type:varchar(160);uniqueIndex;not null;comment:URL 友好标识" json:"slug"`
	LogoURL   string    `gorm:"column:logo_url;type:varchar(512);comment:队徽地址" json:"logo_url"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间" json:"updated_at"`
}

// Tournament 赛事。IsPremium / HideTossPredictions 只影响对用户的展示，不影响计分
type Tournament struct {
	ID                  uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id"`
	Name                string     `gorm:"column:name;type:varchar(256);not null;comment:赛事名称" json:"name"`
	Slug                string     `gorm:"column:slug;type:varchar(300);uniqueIndex;not null;comment:URL 友好标识" json:"slug"`
	Season              string     `gorm:"column:season;type:varchar(32);comment:赛季，如 2025" json:"season"`
	StartDate           *time.Time `gorm:"column:start_date;type:timestamp;comment:开始日期" json:"start_date"`
	EndDate             *time.Time `gorm:"column:end_date;type:timestamp;comment:结束日期" json:"end_date"`
	IsPremium           bool       `gorm:"column:is_premium;type:boolean;default:false;comment:是否付费赛事" json:"is_premium"`
	HideTossPredictions bool       `gorm:"column:hide_toss_predictions;type:boolean;default:false;comment:是否隐藏他人的掷币预测" json:"hide_toss_predictions"`
	CreatedAt           time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间" json:"updated_at"`
}

func (User) TableName() string       { return "users" }
func (Team) TableName() string       { return "teams" }
func (Tournament) TableName() string { return "tournaments" }
