package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"hotel-guest-service/models"
	"hotel-guest-service/repositories"
)

// GuestService owns the guest lifecycle: email uniqueness among active
// guests, soft-delete visibility and the search dispatch.
type GuestService struct {
	repo repositories.GuestRepository
	log  *zap.Logger
}

func NewGuestService(repo repositories.GuestRepository, log *zap.Logger) *GuestService {
	return &GuestService{repo: repo, log: log.Named("guest_service")}
}

// Create stores a new active guest with no loyalty points and an empty stay
// history.
func (s *GuestService) Create(ctx context.Context, req models.GuestRequest) (models.GuestResponse, error) {
	if err := s.ensureEmailAvailable(ctx, req.Email); err != nil {
		return models.GuestResponse{}, err
	}

	guest := &models.Guest{}
	req.ApplyTo(guest)

	if err := s.repo.Create(ctx, guest); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			s.log.Warn("email taken by a concurrent create")
			return models.GuestResponse{}, ErrEmailAlreadyExists
		}
		s.log.Error("failed to create guest", zap.Error(err))
		return models.GuestResponse{}, fmt.Errorf("create guest: %w", err)
	}

	s.log.Info("guest created", zap.Uint("guest_id", guest.ID))
	return guest.ToResponse(), nil
}

// GetByID returns the guest unless it is missing or soft-deleted.
func (s *GuestService) GetByID(ctx context.Context, id uint) (models.GuestResponse, error) {
	guest, err := s.findActive(ctx, id)
	if err != nil {
		return models.GuestResponse{}, err
	}
	return guest.ToResponse(), nil
}

func (s *GuestService) List(ctx context.Context, page models.PageRequest) (models.Page[models.GuestResponse], error) {
	return s.page("list", page, func() ([]models.Guest, int64, error) {
		return s.repo.FindActive(ctx, page)
	})
}

// Update overwrites every editable field of an active guest. Loyalty points,
// stay history and the deletion flag are kept.
func (s *GuestService) Update(ctx context.Context, id uint, req models.GuestRequest) (models.GuestResponse, error) {
	guest, err := s.findActive(ctx, id)
	if err != nil {
		return models.GuestResponse{}, err
	}

	if guest.Email != req.Email {
		if err := s.ensureEmailAvailable(ctx, req.Email); err != nil {
			return models.GuestResponse{}, err
		}
	}

	req.ApplyTo(guest)

	if err := s.repo.Save(ctx, guest); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			s.log.Warn("email taken by a concurrent write", zap.Uint("guest_id", id))
			return models.GuestResponse{}, ErrEmailAlreadyExists
		}
		s.log.Error("failed to update guest", zap.Uint("guest_id", id), zap.Error(err))
		return models.GuestResponse{}, fmt.Errorf("update guest %d: %w", id, err)
	}

	s.log.Info("guest updated", zap.Uint("guest_id", id))
	return guest.ToResponse(), nil
}

// Delete soft-deletes a guest. Only a guest that never existed is an error:
// deleting an already deleted guest succeeds without touching the row.
func (s *GuestService) Delete(ctx context.Context, id uint) error {
	guest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrGuestNotFound
		}
		s.log.Error("failed to load guest", zap.Uint("guest_id", id), zap.Error(err))
		return fmt.Errorf("load guest %d: %w", id, err)
	}

	if guest.IsDeleted {
		s.log.Debug("guest already deleted", zap.Uint("guest_id", id))
		return nil
	}

	guest.IsDeleted = true
	if err := s.repo.Save(ctx, guest); err != nil {
		s.log.Error("failed to delete guest", zap.Uint("guest_id", id), zap.Error(err))
		return fmt.Errorf("delete guest %d: %w", id, err)
	}

	s.log.Info("guest deleted", zap.Uint("guest_id", id))
	return nil
}

// Search matches keyword, ignoring case, against names, email and phone.
func (s *GuestService) Search(ctx context.Context, keyword string, page models.PageRequest) (models.Page[models.GuestResponse], error) {
	return s.page("search", page, func() ([]models.Guest, int64, error) {
		return s.repo.SearchActive(ctx, keyword, page)
	})
}

func (s *GuestService) SearchByEmail(ctx context.Context, email string, page models.PageRequest) (models.Page[models.GuestResponse], error) {
	return s.page("search_by_email", page, func() ([]models.Guest, int64, error) {
		return s.repo.FindActiveByEmailContaining(ctx, email, page)
	})
}

// SearchByPhone is case-sensitive, unlike the other text searches.
func (s *GuestService) SearchByPhone(ctx context.Context, phone string, page models.PageRequest) (models.Page[models.GuestResponse], error) {
	return s.page("search_by_phone", page, func() ([]models.Guest, int64, error) {
		return s.repo.FindActiveByPhoneContaining(ctx, phone, page)
	})
}

func (s *GuestService) SearchByLoyaltyPoints(ctx context.Context, minPoints int, page models.PageRequest) (models.Page[models.GuestResponse], error) {
	return s.page("search_by_loyalty_points", page, func() ([]models.Guest, int64, error) {
		return s.repo.FindActiveByMinLoyaltyPoints(ctx, minPoints, page)
	})
}

func (s *GuestService) findActive(ctx context.Context, id uint) (*models.Guest, error) {
	guest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		s.log.Error("failed to load guest", zap.Uint("guest_id", id), zap.Error(err))
		return nil, fmt.Errorf("load guest %d: %w", id, err)
	}
	if guest.IsDeleted {
		return nil, ErrGuestNotFound
	}
	return guest, nil
}

// ensureEmailAvailable is a pre-check only; the unique index on active emails
// is what holds under concurrent writes.
func (s *GuestService) ensureEmailAvailable(ctx context.Context, email string) error {
	exists, err := s.repo.ExistsActiveByEmail(ctx, email)
	if err != nil {
		s.log.Error("failed to check email", zap.Error(err))
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return ErrEmailAlreadyExists
	}
	return nil
}

func (s *GuestService) page(
	op string,
	req models.PageRequest,
	fetch func() ([]models.Guest, int64, error),
) (models.Page[models.GuestResponse], error) {
	if fields := req.Validate(); len(fields) > 0 {
		return models.Page[models.GuestResponse]{}, NewValidationError(fields...)
	}

	guests, total, err := fetch()
	if err != nil {
		s.log.Error("failed to query guests", zap.String("op", op), zap.Error(err))
		return models.Page[models.GuestResponse]{}, fmt.Errorf("%s guests: %w", op, err)
	}

	s.log.Debug("guests queried",
		zap.String("op", op),
		zap.Int("page", req.Page),
		zap.Int("size", req.Size),
		zap.Int64("total", total),
	)
	return models.MapPage(models.NewPage(guests, req, total), models.Guest.ToResponse), nil
}
