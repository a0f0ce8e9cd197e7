package model

import "time"

type Offer struct {
	DTO
	EventId         uint      `gorm:"not null;index" json:"eventId"`
	Code            string    `gorm:"size:30;uniqueIndex;not null" json:"code"`
	DiscountPercent float64   `gorm:"not null" json:"discountPercent"`
	ValidUntil      time.Time `gorm:"not null" json:"validUntil"`
	MaxUses         int       `gorm:"not null" json:"maxUses"`
	UsedCount       int       `gorm:"not null;default:0" json:"usedCount"`
	Event           Event     `gorm:"foreignKey:EventId" json:"-"`
}

type Offers []Offer

type CreateOfferInput struct {
	EventId         uint      `json:"eventId" validate:"required,gt=0"`
	Code            string    `json:"code" validate:"required,max=30"`
	DiscountPercent float64   `json:"discountPercent" validate:"required,gt=0,lte=100"`
	ValidUntil      time.Time `json:"validUntil" validate:"required"`
	MaxUses         int       `json:"maxUses" validate:"required,gt=0"`
}
