package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "ticketdesk/internal/errors"
	"ticketdesk/internal/model"
	"ticketdesk/internal/repository"
)

// TicketUpdate carries the fields of a partial ticket update. Nil fields
// retain their prior values.
type TicketUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

// TicketService exposes ticket operations scoped by ownership or admin
// override. Every operation takes the acting user and enforces the gate
// itself; handlers never touch the repository directly.
type TicketService interface {
	Create(ctx context.Context, actor *model.User, title, description string) (*model.Ticket, error)
	List(ctx context.Context, actor *model.User) ([]model.Ticket, error)
	Get(ctx context.Context, actor *model.User, id uint) (*model.Ticket, error)
	Update(ctx context.Context, actor *model.User, id uint, update TicketUpdate) (*model.Ticket, error)
	Delete(ctx context.Context, actor *model.User, id uint) error
}

type ticketService struct {
	repo repository.TicketRepository
}

// NewTicketService builds a TicketService over the repository.
func NewTicketService(repo repository.TicketRepository) TicketService {
	return &ticketService{repo: repo}
}

// Create opens a new ticket owned by the actor. Status always starts open.
func (s *ticketService) Create(ctx context.Context, actor *model.User, title, description string) (*model.Ticket, error) {
	ticket := &model.Ticket{
		Title:       title,
		Description: description,
		Status:      model.StatusOpen,
		UserID:      actor.ID,
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return ticket, nil
}

// List returns all tickets for admins and only owned tickets otherwise.
func (s *ticketService) List(ctx context.Context, actor *model.User) ([]model.Ticket, error) {
	if actor.IsAdmin() {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByOwner(ctx, actor.ID)
}

// Get fetches a single ticket, applying the ownership gate.
func (s *ticketService) Get(ctx context.Context, actor *model.User, id uint) (*model.Ticket, error) {
	return s.fetchGated(ctx, actor, id)
}

// Update applies a partial update within a single transaction. Omitted fields
// keep their stored values; an unknown status is rejected before any write.
func (s *ticketService) Update(ctx context.Context, actor *model.User, id uint, update TicketUpdate) (*model.Ticket, error) {
	ticket, err := s.fetchGated(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		ticket.Title = *update.Title
	}
	if update.Description != nil {
		ticket.Description = *update.Description
	}
	if update.Status != nil {
		status, err := model.ParseStatus(*update.Status)
		if err != nil {
			return nil, err
		}
		ticket.Status = status
	}

	if err := s.repo.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}
	return ticket, nil
}

// Delete physically removes a ticket, applying the ownership gate.
func (s *ticketService) Delete(ctx context.Context, actor *model.User, id uint) error {
	if _, err := s.fetchGated(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTicketNotFound
		}
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}

// fetchGated loads a ticket and enforces the ownership gate: admins see
// everything, everyone else only their own tickets. NotFound is checked
// before Forbidden, matching the route semantics.
func (s *ticketService) fetchGated(ctx context.Context, actor *model.User, id uint) (*model.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	if !actor.IsAdmin() && ticket.UserID != actor.ID {
		return nil, apperrors.ErrForbidden
	}
	return ticket, nil
}
