package model

type Venue struct {
	DTO
	Name          string `gorm:"not null" json:"name"`
	City          string `json:"city"`
	TotalCapacity int    `gorm:"not null" json:"totalCapacity"`
	Address       string `json:"address"`
}

type Venues []Venue

type CreateVenueInput struct {
	Name          string `json:"name" validate:"required"`
	City          string `json:"city" validate:"required"`
	TotalCapacity int    `json:"totalCapacity" validate:"required,gt=0"`
	Address       string `json:"address" validate:"required"`
}
