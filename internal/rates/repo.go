package rates

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vuminhhai/seaquote-backend/internal/pricing"
	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
)

// Repository handles rate table persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, rate *models.RateTable) error
	Update(ctx context.Context, rate *models.RateTable) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.RateTable, error)
	List(ctx context.Context, params ListRatesQuery) ([]models.RateTable, error)
	ActiveRate(ctx context.Context, key pricing.RateKey, on time.Time) (decimal.Decimal, bool, error)
}

// ListRatesQuery configures rate table list queries.
type ListRatesQuery struct {
	ServiceType *enums.ServiceType
	Category    *enums.RateCategory
	ActiveOnly  bool
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a rate table repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rate *models.RateTable) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *repository) Update(ctx context.Context, rate *models.RateTable) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.RateTable, error) {
	var rate models.RateTable
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

func (r *repository) List(ctx context.Context, params ListRatesQuery) ([]models.RateTable, error) {
	query := r.db.WithContext(ctx).Model(&models.RateTable{})
	if params.ServiceType != nil {
		query = query.Where("service_type = ?", *params.ServiceType)
	}
	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}
	if params.ActiveOnly {
		query = query.Where("is_active")
	}
	var rows []models.RateTable
	if err := query.Order("service_type, category, valid_from DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ActiveRate resolves the override row for a rate key at a point in time.
// Route and size columns are nullable; a stored NULL matches only an empty
// key field, so a route-specific row never answers a generic lookup. The
// newest validity window wins when rows overlap.
func (r *repository) ActiveRate(ctx context.Context, key pricing.RateKey, on time.Time) (decimal.Decimal, bool, error) {
	var rate models.RateTable
	err := r.db.WithContext(ctx).
		Where("service_type = ?", key.Service).
		Where("category = ?", key.Category).
		Where("COALESCE(from_loc, '') = ?", key.From).
		Where("COALESCE(to_loc, '') = ?", key.To).
		Where("COALESCE(size_class, '') = ?", key.Size).
		Where("is_active").
		Where("valid_from <= ?", on).
		Where("(valid_to IS NULL OR valid_to >= ?)", on).
		Order("valid_from DESC").
		First(&rate).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}
	return rate.Rate, true, nil
}
