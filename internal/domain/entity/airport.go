package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport represents airport reference data used to resolve display city names
type Airport struct {
	ID          uint
	AirportCode string
	AirportName string
	CityCode    string
	CityName    string
	CountryName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}
