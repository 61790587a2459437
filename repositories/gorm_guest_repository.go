package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"hotel-guest-service/models"
)

// MySQL ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

type scope = func(*gorm.DB) *gorm.DB

// GormGuestRepo implements GuestRepository using GORM.
type GormGuestRepo struct {
	db *gorm.DB
}

func NewGormGuestRepo(db *gorm.DB) GuestRepository {
	return &GormGuestRepo{db: db}
}

func (r *GormGuestRepo) Create(ctx context.Context, g *models.Guest) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *GormGuestRepo) Save(ctx context.Context, g *models.Guest) error {
	if err := r.db.WithContext(ctx).Save(g).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *GormGuestRepo) FindByID(ctx context.Context, id uint) (*models.Guest, error) {
	var g models.Guest
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GormGuestRepo) ExistsActiveByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Guest{}).
		Scopes(activeOnly).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormGuestRepo) FindActive(ctx context.Context, page models.PageRequest) ([]models.Guest, int64, error) {
	return r.findPage(ctx, page)
}

// SearchActive matches keyword case-insensitively against first name, last
// name, email and phone.
func (r *GormGuestRepo) SearchActive(ctx context.Context, keyword string, page models.PageRequest) ([]models.Guest, int64, error) {
	pattern := containsPattern(keyword)
	return r.findPage(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"(LOWER(first_name) LIKE LOWER(?) ESCAPE '!' OR LOWER(last_name) LIKE LOWER(?) ESCAPE '!'"+
				" OR LOWER(email) LIKE LOWER(?) ESCAPE '!' OR LOWER(phone) LIKE LOWER(?) ESCAPE '!')",
			pattern, pattern, pattern, pattern,
		)
	})
}

func (r *GormGuestRepo) FindActiveByEmailContaining(ctx context.Context, fragment string, page models.PageRequest) ([]models.Guest, int64, error) {
	pattern := containsPattern(fragment)
	return r.findPage(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(email) LIKE LOWER(?) ESCAPE '!'", pattern)
	})
}

func (r *GormGuestRepo) FindActiveByPhoneContaining(ctx context.Context, fragment string, page models.PageRequest) ([]models.Guest, int64, error) {
	return r.findPage(ctx, page, r.phoneContains(fragment))
}

func (r *GormGuestRepo) FindActiveByMinLoyaltyPoints(ctx context.Context, minPoints int, page models.PageRequest) ([]models.Guest, int64, error) {
	return r.findPage(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("loyalty_points >= ?", minPoints)
	})
}

// findPage counts the active guests matching scopes and loads one page of
// them in id order.
func (r *GormGuestRepo) findPage(ctx context.Context, page models.PageRequest, scopes ...scope) ([]models.Guest, int64, error) {
	query := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.Guest{}).
			Scopes(activeOnly).
			Scopes(scopes...)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count guests: %w", err)
	}

	guests := []models.Guest{}
	offset := page.Offset()
	if total == 0 || offset < 0 || int64(offset) >= total {
		return guests, total, nil
	}

	if err := query().
		Order("id ASC").
		Offset(offset).
		Limit(page.Size).
		Find(&guests).Error; err != nil {
		return nil, 0, fmt.Errorf("find guests: %w", err)
	}
	return guests, total, nil
}

// phoneContains is a case-sensitive substring match. Plain LIKE folds case on
// MySQL's default collations and on SQLite, so those dialects get their own
// expression.
func (r *GormGuestRepo) phoneContains(fragment string) scope {
	return func(db *gorm.DB) *gorm.DB {
		switch r.db.Dialector.Name() {
		case "mysql":
			return db.Where("phone LIKE BINARY ? ESCAPE '!'", containsPattern(fragment))
		case "sqlite":
			return db.Where("INSTR(phone, ?) > 0", fragment)
		default:
			return db.Where("phone LIKE ? ESCAPE '!'", containsPattern(fragment))
		}
	}
}

func activeOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}
