package helper

import (
	"log"
	"time"

	"event_ticketing/database"
	"event_ticketing/model"

	"github.com/go-co-op/gocron/v2"
)

var eventScheduler gocron.Scheduler

// AutoCloseFinishedEvents moves UPCOMING events whose date has passed to
// CLOSED so they stop showing up as bookable.
func AutoCloseFinishedEvents() {
	log.Println("[CRON] AutoCloseFinishedEvents triggered")

	result := database.DB.Model(&model.Event{}).
		Where("status = ? AND event_date < ?", model.EventUpcoming, time.Now()).
		Update("status", model.EventClosed)

	if result.Error != nil {
		log.Printf("auto-close events: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("closed %d finished events", result.RowsAffected)
	}
}

func StartEventStatusScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	eventScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(AutoCloseFinishedEvents),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("event status scheduler started (00:05)")
}

func StopEventStatusScheduler() {
	if eventScheduler != nil {
		_ = eventScheduler.Shutdown()
	}
}
