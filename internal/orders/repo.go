package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
)

// Repository handles order persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByQuotationID(ctx context.Context, quotationID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params ListOrdersQuery) ([]models.Order, error)
	CountForDay(ctx context.Context, prefix string) (int64, error)
}

// ListOrdersQuery configures order list queries.
type ListOrdersQuery struct {
	CustomerID *uuid.UUID
	Status     *enums.OrderStatus
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an order repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Save(order).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *repository) FindByQuotationID(ctx context.Context, quotationID uuid.UUID) (*models.Order, error) {
	return r.findOne(ctx, "quotation_id = ?", quotationID)
}

func (r *repository) findOne(ctx context.Context, cond string, arg any) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("display_order") }).
		Where(cond, arg).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, params ListOrdersQuery) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	var rows []models.Order
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountForDay counts order codes sharing a day prefix, used to derive the
// next sequence number.
func (r *repository) CountForDay(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_code LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}
