package repository

import (
	"context"

	"gorm.io/gorm"

	"ticketdesk/internal/model"
)

// TicketRepository defines ticket persistence operations.
type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	FindByID(ctx context.Context, id uint) (*model.Ticket, error)
	ListAll(ctx context.Context) ([]model.Ticket, error)
	ListByOwner(ctx context.Context, userID uint) ([]model.Ticket, error)
	Update(ctx context.Context, ticket *model.Ticket) error
	Delete(ctx context.Context, id uint) error
}

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository builds a GORM-backed repository.
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) FindByID(ctx context.Context, id uint) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := r.db.WithContext(ctx).First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListAll(ctx context.Context) ([]model.Ticket, error) {
	var tickets []model.Ticket
	if err := r.db.WithContext(ctx).Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Ticket, error) {
	var tickets []model.Ticket
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// Update persists the full ticket row as a single atomic write.
func (r *ticketRepository) Update(ctx context.Context, ticket *model.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(ticket).Error
	})
}

// Delete physically removes the row. Tickets carry no soft-delete column, so
// deletion is irreversible.
func (r *ticketRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Ticket{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
