package quotations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
)

// Repository handles quotation persistence. Finds preload the breakdown and
// audit children in their stored order.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, quotation *models.Quotation) error
	Update(ctx context.Context, quotation *models.Quotation) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error)
	FindByCode(ctx context.Context, code string) (*models.Quotation, error)
	List(ctx context.Context, params ListQuotationsQuery) ([]models.Quotation, error)
	CountForDay(ctx context.Context, prefix string) (int64, error)
}

// ListQuotationsQuery configures quotation list queries.
type ListQuotationsQuery struct {
	CustomerID *uuid.UUID
	Status     *enums.QuoteStatus
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a quotation repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Create persists the quotation together with its item and step children;
// gorm writes the associations in the surrounding transaction.
func (r *repository) Create(ctx context.Context, quotation *models.Quotation) error {
	return r.db.WithContext(ctx).Create(quotation).Error
}

// Update persists scalar fields only. Children are frozen at creation and
// must never be rewritten by a status change.
func (r *repository) Update(ctx context.Context, quotation *models.Quotation) error {
	return r.db.WithContext(ctx).
		Omit("Items", "Steps").
		Save(quotation).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *repository) FindByCode(ctx context.Context, code string) (*models.Quotation, error) {
	return r.findOne(ctx, "quote_code = ?", code)
}

func (r *repository) findOne(ctx context.Context, cond string, arg any) (*models.Quotation, error) {
	var quotation models.Quotation
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("display_order") }).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("step_order") }).
		Where(cond, arg).
		First(&quotation).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &quotation, nil
}

func (r *repository) List(ctx context.Context, params ListQuotationsQuery) ([]models.Quotation, error) {
	query := r.db.WithContext(ctx).Model(&models.Quotation{})
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	var rows []models.Quotation
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountForDay counts quote codes sharing a day prefix, used to derive the
// next sequence number.
func (r *repository) CountForDay(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Quotation{}).
		Where("quote_code LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}
