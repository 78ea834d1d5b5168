package service

import (
	"context"
	"fmt"
	"strings"

	"CricketPredict/internal/apperr"
	"CricketPredict/internal/model"
	"CricketPredict/internal/repository"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// TicketService 用户工单
type TicketService struct {
	ticketRepo repository.TicketRepository
	userRepo   repository.UserRepository
	clock      clockwork.Clock
	logger     *logrus.Logger
}

// NewTicketService 创建工单服务
func NewTicketService(ticketRepo repository.TicketRepository, userRepo repository.UserRepository, clock clockwork.Clock, logger *logrus.Logger) *TicketService {
	return &TicketService{ticketRepo: ticketRepo, userRepo: userRepo, clock: clock, logger: logger}
}

func (s *TicketService) Open(ctx context.Context, userID uint64, subject, message string) (*model.SupportTicket, error) {
	subject, message = strings.TrimSpace(subject), strings.TrimSpace(message)
	if subject == "" || message == "" {
		return nil, apperr.Validation("TICKET_INVALID", "subject and message are required")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	t := &model.SupportTicket{
		TicketUUID: uuid.NewString(),
		UserID:     userID,
		Subject:    subject,
		Message:    message,
		Status:     model.TicketOpen,
	}
	if err := s.ticketRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketService) ListForAdmin(ctx context.Context, status model.TicketStatus, page, pageSize int) ([]*model.SupportTicket, int64, error) {
	if status != "" && !validTicketStatus(status) {
		return nil, 0, apperr.Validation("INVALID_TICKET_STATUS", fmt.Sprintf("unknown ticket status %q", status))
	}
	return s.ticketRepo.List(ctx, status, page, pageSize)
}

// Respond 管理员回复；置为 resolved/closed 时记录处理时间
func (s *TicketService) Respond(ctx context.Context, id uint64, reply string, status model.TicketStatus) (*model.SupportTicket, error) {
	if !validTicketStatus(status) {
		return nil, apperr.Validation("INVALID_TICKET_STATUS", fmt.Sprintf("unknown ticket status %q", status))
	}
	t, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status == model.TicketClosed {
		return nil, apperr.InvalidState("TICKET_CLOSED", fmt.Sprintf("ticket %d is closed", id))
	}

	t.AdminReply, t.Status, t.ResolvedAt = strings.TrimSpace(reply), status, nil
	if status != model.TicketOpen {
		now := s.clock.Now()
		t.ResolvedAt = &now
	}
	if err := s.ticketRepo.Respond(ctx, id, t.AdminReply, t.Status, t.ResolvedAt); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"ticket_id": id, "status": status}).Info("工单已处理")
	return t, nil
}

func validTicketStatus(s model.TicketStatus) bool {
	switch s {
	case model.TicketOpen, model.TicketResolved, model.TicketClosed:
		return true
	}
	return false
}
