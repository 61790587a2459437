package repositories

import (
	"context"
	"errors"

	"hotel-guest-service/models"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)

// GuestRepository specifies guest related database operations. Every
// "Active" finder skips soft-deleted guests; FindByID does not.
type GuestRepository interface {
	Create(ctx context.Context, g *models.Guest) error
	Save(ctx context.Context, g *models.Guest) error
	FindByID(ctx context.Context, id uint) (*models.Guest, error)
	ExistsActiveByEmail(ctx context.Context, email string) (bool, error)

	FindActive(ctx context.Context, page models.PageRequest) ([]models.Guest, int64, error)
	SearchActive(ctx context.Context, keyword string, page models.PageRequest) ([]models.Guest, int64, error)
	FindActiveByEmailContaining(ctx context.Context, fragment string, page models.PageRequest) ([]models.Guest, int64, error)
	FindActiveByPhoneContaining(ctx context.Context, fragment string, page models.PageRequest) ([]models.Guest, int64, error)
	FindActiveByMinLoyaltyPoints(ctx context.Context, minPoints int, page models.PageRequest) ([]models.Guest, int64, error)
}
