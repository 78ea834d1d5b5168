package model

import (
	"time"

	"gorm.io/datatypes"
)

// PointsLedgerEntry 对应 points_ledger 表，只追加不修改。
// Points 为 +1（奖励）或 -1（赛果更正后的撤销），同一 (user, match, kind) 的净值即该来源当前得分
type PointsLedgerEntry struct {
	ID           uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EntryUUID    string         `gorm:"column:entry_uuid;type:varchar(64);uniqueIndex;not null" json:"entry_uuid"`
	UserID       uint64         `gorm:"column:user_id;type:bigint;not null;index:idx_ledger_user_match" json:"user_id"`
	MatchID      uint64         `gorm:"column:match_id;type:bigint;not null;index:idx_ledger_user_match;index" json:"match_id"`
	PredictionID uint64         `gorm:"column:prediction_id;type:bigint;not null" json:"prediction_id"`
	Kind         LedgerKind     `gorm:"column:kind;type:varchar(16);not null" json:"kind"`
	Points       int            `gorm:"column:points;type:int;not null" json:"points"`
	Reason       string         `gorm:"column:reason;type:varchar(128);not null" json:"reason"`
	Metadata     datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt    time.Time      `gorm:"column:created_at;type:timestamp;default:now()" json:"created_at"`
}

func (PointsLedgerEntry) TableName() string { return "points_ledger" }

// SupportTicket 用户工单
type SupportTicket struct {
	ID         uint64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TicketUUID string       `gorm:"column:ticket_uuid;type:varchar(64);uniqueIndex;not null" json:"ticket_uuid"`
	UserID     uint64       `gorm:"column:user_id;type:bigint;not null;index" json:"user_id"`
	Subject    string       `gorm:"column:subject;type:varchar(256);not null" json:"subject"`
	Message    string       `gorm:"column:message;type:text;not null" json:"message"`
	Status     TicketStatus `gorm:"column:status;type:varchar(16);default:'open';index" json:"status"`
	AdminReply string       `gorm:"column:admin_reply;type:text" json:"admin_reply"`
	ResolvedAt *time.Time   `gorm:"column:resolved_at;type:timestamp" json:"resolved_at"`
	CreatedAt  time.Time    `gorm:"column:created_at;type:timestamp;default:now()" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"column:updated_at;type:timestamp;default:now()" json:"updated_at"`
}

func (SupportTicket) TableName() string { return "support_tickets" }
