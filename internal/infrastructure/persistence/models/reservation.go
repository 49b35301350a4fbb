package models

import (
	"time"

	"github.com/bistro/backend/internal/domain/reservation"
)

// ReservationModel is the persistence model for the Reservation domain entity.
type ReservationModel struct {
	BaseModel
	Email       string    `gorm:"type:varchar(200);not null;index"`
	Name        string    `gorm:"type:varchar(200)"`
	Phone       string    `gorm:"type:varchar(50)"`
	Guests      int       `gorm:"not null"`
	ReservedFor time.Time `gorm:"not null"`
	Notes       string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReservationModel) TableName() string {
	return "reservations"
}

// ToDomain converts the persistence model to a domain Reservation entity.
func (m *ReservationModel) ToDomain() *reservation.Reservation {
	return &reservation.Reservation{
		BaseEntity:  m.BaseModel.ToDomain(),
		Email:       m.Email,
		Name:        m.Name,
		Phone:       m.Phone,
		Guests:      m.Guests,
		ReservedFor: m.ReservedFor,
		Notes:       m.Notes,
	}
}

// ReservationModelFromDomain creates a persistence model from a domain Reservation entity.
func ReservationModelFromDomain(r *reservation.Reservation) *ReservationModel {
	m := &ReservationModel{
		Email:       r.Email,
		Name:        r.Name,
		Phone:       r.Phone,
		Guests:      r.Guests,
		ReservedFor: r.ReservedFor,
		Notes:       r.Notes,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
