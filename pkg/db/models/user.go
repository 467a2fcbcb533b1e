package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
)

// User is a platform account: customers submit requests, employees quote them.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	FullName     string         `gorm:"column:full_name;not null"`
	Phone        *string        `gorm:"column:phone"`
	Company      *string        `gorm:"column:company"`
	Role         enums.UserRole `gorm:"column:role;not null;default:'customer'"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
