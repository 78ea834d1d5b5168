package repository

import (
	"context"
	"fmt"
	"time"

	"CricketPredict/internal/model"

	"gorm.io/gorm"
)

// TicketRepository 工单仓储
type TicketRepository interface {
	Create(ctx context.Context, t *model.SupportTicket) error
	GetByID(ctx context.Context, id uint64) (*model.SupportTicket, error)
	// List status 为空时返回全部，按创建时间倒序
	List(ctx context.Context, status model.TicketStatus, page, pageSize int) ([]*model.SupportTicket, int64, error)
	Respond(ctx context.Context, id uint64, reply string, status model.TicketStatus, resolvedAt *time.Time) error
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, t *model.SupportTicket) error {
	return translate(r.db.WithContext(ctx).Create(t).Error, "TICKET_CREATE", "")
}

func (r *ticketRepository) GetByID(ctx context.Context, id uint64) (*model.SupportTicket, error) {
	var t model.SupportTicket
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, translate(err, "TICKET_NOT_FOUND", fmt.Sprintf("ticket %d not found", id))
	}
	return &t, nil
}

func (r *ticketRepository) List(ctx context.Context, status model.TicketStatus, page, pageSize int) ([]*model.SupportTicket, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	db := r.db.WithContext(ctx).Model(&model.SupportTicket{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "TICKET_LIST", "")
	}
	var list []*model.SupportTicket
	if err := db.Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&list).Error; err != nil {
		return nil, 0, translate(err, "TICKET_LIST", "")
	}
	return list, total, nil
}

func (r *ticketRepository) Respond(ctx context.Context, id uint64, reply string, status model.TicketStatus, resolvedAt *time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.SupportTicket{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"admin_reply": reply,
			"status":      status,
			"resolved_at": resolvedAt,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error, "TICKET_RESPOND", "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "TICKET_NOT_FOUND", fmt.Sprintf("ticket %d not found", id))
	}
	return nil
}
