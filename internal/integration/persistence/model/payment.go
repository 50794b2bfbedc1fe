package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/payontime/backend/internal/domain/entity"
	"github.com/payontime/backend/internal/domain/valueobject"
)

// PaymentModel represents the payments table in the database.
type PaymentModel struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	PaymentType      string           `gorm:"type:varchar(100);not null"`
	Name             *string          `gorm:"type:varchar(200)"`
	Amount           *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Currency         *string          `gorm:"type:varchar(3)"`
	ProviderAddress  *string          `gorm:"type:varchar(500)"`
	ScheduleMode     string           `gorm:"type:varchar(20);not null"`
	DueDate          *time.Time       `gorm:"type:date"`
	IntervalUnit     string           `gorm:"type:varchar(10);not null"`
	IntervalValue    *int
	DayOfMonth       *int
	IsLastDayOfMonth bool       `gorm:"not null"`
	CycleStartDate   *time.Time `gorm:"type:date"`
	MonthOfYear      *int
	RemindOffsets    OffsetList
	IsActive         bool      `gorm:"not null;index"`
	IsFixed          bool      `gorm:"not null"`
	IsAutomatic      bool      `gorm:"not null"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the PaymentModel.
func (PaymentModel) TableName() string {
	return "payments"
}

// ToEntity converts a PaymentModel to a domain Payment entity.
func (m *PaymentModel) ToEntity() *entity.Payment {
	offsets := make([]int, len(m.RemindOffsets))
	copy(offsets, m.RemindOffsets)

	return &entity.Payment{
		ID:               m.ID,
		UserID:           m.UserID,
		PaymentType:      m.PaymentType,
		Name:             m.Name,
		Amount:           m.Amount,
		Currency:         m.Currency,
		ProviderAddress:  m.ProviderAddress,
		ScheduleMode:     entity.ScheduleMode(m.ScheduleMode),
		DueDate:          dateFromColumn(m.DueDate),
		IntervalUnit:     entity.IntervalUnit(m.IntervalUnit),
		IntervalValue:    m.IntervalValue,
		DayOfMonth:       m.DayOfMonth,
		IsLastDayOfMonth: m.IsLastDayOfMonth,
		CycleStartDate:   dateFromColumn(m.CycleStartDate),
		MonthOfYear:      m.MonthOfYear,
		RemindOffsets:    offsets,
		IsActive:         m.IsActive,
		IsFixed:          m.IsFixed,
		IsAutomatic:      m.IsAutomatic,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// PaymentFromEntity creates a PaymentModel from a domain Payment entity.
func PaymentFromEntity(p *entity.Payment) *PaymentModel {
	return &PaymentModel{
		ID:               p.ID,
		UserID:           p.UserID,
		PaymentType:      p.PaymentType,
		Name:             p.Name,
		Amount:           p.Amount,
		Currency:         p.Currency,
		ProviderAddress:  p.ProviderAddress,
		ScheduleMode:     string(p.ScheduleMode),
		DueDate:          dateToColumn(p.DueDate),
		IntervalUnit:     string(p.IntervalUnit),
		IntervalValue:    p.IntervalValue,
		DayOfMonth:       p.DayOfMonth,
		IsLastDayOfMonth: p.IsLastDayOfMonth,
		CycleStartDate:   dateToColumn(p.CycleStartDate),
		MonthOfYear:      p.MonthOfYear,
		RemindOffsets:    OffsetList(p.RemindOffsets),
		IsActive:         p.IsActive,
		IsFixed:          p.IsFixed,
		IsAutomatic:      p.IsAutomatic,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// date columns round-trip through midnight UTC.
func dateToColumn(d *valueobject.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time()
	return &t
}

func dateFromColumn(t *time.Time) *valueobject.Date {
	if t == nil {
		return nil
	}
	d := valueobject.DateFromTime(t.UTC())
	return &d
}
