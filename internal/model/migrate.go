package model

import "gorm.io/gorm"

// AutoMigrate 按依赖顺序建表（不存在则创建）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Team{},
		&Tournament{},
		&Match{},
		&Prediction{},
		&PointsLedgerEntry{},
		&SupportTicket{},
	)
}
