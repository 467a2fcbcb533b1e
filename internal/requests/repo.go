package requests

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
)

// Repository handles service request persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, request *models.ServiceRequest) error
	Update(ctx context.Context, request *models.ServiceRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error)
	List(ctx context.Context, params ListRequestsQuery) ([]models.ServiceRequest, error)
	CountForDay(ctx context.Context, prefix string) (int64, error)
}

// ListRequestsQuery configures service request list queries.
type ListRequestsQuery struct {
	CustomerID  *uuid.UUID
	Status      *enums.RequestStatus
	ServiceType *enums.ServiceType
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a service request repository bound to the provided
// database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, request *models.ServiceRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) Update(ctx context.Context, request *models.ServiceRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *repository) List(ctx context.Context, params ListRequestsQuery) ([]models.ServiceRequest, error) {
	query := r.db.WithContext(ctx).Model(&models.ServiceRequest{})
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.ServiceType != nil {
		query = query.Where("service_type = ?", *params.ServiceType)
	}
	var rows []models.ServiceRequest
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountForDay counts request codes sharing a day prefix, used to derive the
// next sequence number.
func (r *repository) CountForDay(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where("request_code LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}
