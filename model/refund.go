package model

import "time"

const (
	RefundPending  = "PENDING"
	RefundApproved = "APPROVED"
	RefundRejected = "REJECTED"
)

type RefundRequest struct {
	DTO
	OrderId     uint       `gorm:"not null;index" json:"orderId"`
	RequestedBy uint       `gorm:"not null" json:"requestedBy"`
	Reason      string     `gorm:"type:text" json:"reason"`
	Status      string     `gorm:"not null;default:'PENDING'" json:"status"`
	ResolvedBy  *uint      `json:"resolvedBy,omitempty"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
	Order       Order      `gorm:"foreignKey:OrderId" json:"-"`
}

type RefundRequests []RefundRequest

type CreateRefundInput struct {
	OrderId uint   `json:"orderId" validate:"required,gt=0"`
	Reason  string `json:"reason" validate:"required"`
}

type ResolveRefundInput struct {
	Approve bool `json:"approve"`
}
