package helper

import (
	"event_ticketing/model"

	"gorm.io/gorm"
)

// ConfirmedSeatCount counts tickets across a customer's CONFIRMED orders for
// one event. PENDING orders deliberately do not count toward the quota.
func ConfirmedSeatCount(tx *gorm.DB, userId, eventId uint) (int64, error) {
	var count int64
	err := tx.Model(&model.Ticket{}).
		Joins("JOIN orders ON orders.id = tickets.order_id").
		Where("orders.user_id = ? AND orders.event_id = ? AND orders.status = ?",
			userId, eventId, model.OrderConfirmed).
		Count(&count).Error
	return count, err
}
