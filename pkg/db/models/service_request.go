package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
)

// ServiceRequest is the intake record the pricing engine reads. ServiceData
// holds the serialized type-specific payload (route, containers, vessel specs).
type ServiceRequest struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RequestCode string              `gorm:"column:request_code;not null;uniqueIndex"`
	CustomerID  uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	ServiceType enums.ServiceType   `gorm:"column:service_type;type:text;not null"`
	Status      enums.RequestStatus `gorm:"column:status;type:text;not null;default:'DRAFT'"`
	FullName    string              `gorm:"column:full_name;not null"`
	ContactInfo string              `gorm:"column:contact_info;not null"`
	Notes       *string             `gorm:"column:notes"`
	ServiceData string              `gorm:"column:service_data;type:jsonb;not null"`
	SubmittedAt *time.Time          `gorm:"column:submitted_at"`
	QuotedAt    *time.Time          `gorm:"column:quoted_at"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
