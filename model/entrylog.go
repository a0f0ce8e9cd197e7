package model

import "time"

const (
	EntrySuccess = "success"
	EntryFailed  = "failed"
)

// EntryLog is append-only; rows are never updated or deleted.
type EntryLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TicketId    *uint     `json:"ticketId,omitempty"`
	ValidatedBy uint      `gorm:"not null" json:"validatedBy"`
	Result      string    `gorm:"not null" json:"result"`
	ScannedAt   time.Time `json:"scannedAt"`
}

type EntryLogs []EntryLog

type ValidateTicketInput struct {
	TicketCode string `json:"ticketCode" validate:"required,max=20"`
}
