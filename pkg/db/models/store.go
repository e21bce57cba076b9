package models

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a rental shop that owns scooter units.
type Store struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"column:name;not null"`
	Email       string     `gorm:"type:text;not null;uniqueIndex"`
	Description *string    `gorm:"column:description"`
	Address     string     `gorm:"column:address;not null"`
	Latitude    *float64   `gorm:"column:latitude"`
	Longitude   *float64   `gorm:"column:longitude"`
	Accepted    bool       `gorm:"column:accepted;not null;default:false"`
	OwnerID     uuid.UUID  `gorm:"column:owner_id;type:uuid;not null"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
