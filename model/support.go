package model

const (
	SupportOpen       = "OPEN"
	SupportInProgress = "IN_PROGRESS"
	SupportResolved   = "RESOLVED"
)

type SupportCase struct {
	DTO
	RaisedBy        uint   `gorm:"not null" json:"raisedBy"`
	OrderId         *uint  `json:"orderId,omitempty"`
	Description     string `gorm:"type:text;not null" json:"description"`
	Status          string `gorm:"not null;default:'OPEN'" json:"status"`
	AssignedTo      *uint  `json:"assignedTo,omitempty"`
	ResolutionNotes string `gorm:"type:text" json:"resolutionNotes"`
}

type SupportCases []SupportCase

type CreateSupportCaseInput struct {
	OrderId     *uint  `json:"orderId" validate:"omitempty,gt=0"`
	Description string `json:"description" validate:"required"`
}

type UpdateSupportCaseInput struct {
	Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED"`
	Notes  string `json:"notes"`
}
