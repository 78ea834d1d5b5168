package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（对应 config/config.yaml）
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`    // 服务器配置
	Database  DatabaseConfig  `mapstructure:"database"`  // PostgreSQL 配置
	Scheduler SchedulerConfig `mapstructure:"scheduler"` // 定时任务配置
	Mail      MailConfig      `mapstructure:"mail"`      // 邮件配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// DatabaseConfig PostgreSQL 配置
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN，须为 URL 形式
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
	LogSQL          bool          `mapstructure:"log_sql"`           // 是否打印 SQL
}

// SchedulerConfig 定时任务配置
type SchedulerConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ReconcileCron  string        `mapstructure:"reconcile_cron"`  // 积分对账 cron 表达式
	StatusSweepGap time.Duration `mapstructure:"status_sweep_gap"` // 比赛开赛状态扫描间隔
}

// MailConfig 验证邮件配置，SendGridAPIKey 为空时不发信
type MailConfig struct {
	SendGridAPIKey string `mapstructure:"sendgrid_api_key"`
	FromEmail      string `mapstructure:"from_email"`
	FromName       string `mapstructure:"from_name"`
	FrontendURL    string `mapstructure:"frontend_url"` // 用于拼接验证链接
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // .env 可不存在
	return LoadConfigFrom("./config")
}

// LoadConfigFrom 从指定目录读取 config.yaml
func LoadConfigFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	overrideFromEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.reconcile_cron", "0 */6 * * *")
	v.SetDefault("scheduler.status_sweep_gap", time.Minute)
	v.SetDefault("mail.from_name", "Cricket Predict")
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SENDGRID_API_KEY"); v != "" {
		cfg.Mail.SendGridAPIKey = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		cfg.Mail.FromEmail = v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.Mail.FrontendURL = v
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn 未配置（或设置 DATABASE_DSN）")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port 非法: %d", c.Server.Port)
	}
	return nil
}
