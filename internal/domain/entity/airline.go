package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline is a carrier directory row, keyed by the two-letter flight prefix
type Airline struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
