package database

import (
	"log"
	"time"

	"event_ticketing/constants"
	"event_ticketing/model"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedData creates the fixtures a fresh install needs: one account per role,
// a venue and one sample event per organizer.
func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}
	hashed := string(bytes)

	users := []model.User{
		{Name: "Administrator", Email: "admin@example.com", Password: hashed, Role: constants.ROLE_ADMIN},
		{Name: "Sample Organizer", Email: "org@example.com", Password: hashed, Role: constants.ROLE_ORGANIZER},
		{Name: "Sample Customer", Email: "customer@example.com", Password: hashed, Role: constants.ROLE_CUSTOMER},
		{Name: "Gate Staff", Email: "entry@example.com", Password: hashed, Role: constants.ROLE_ENTRY_MANAGER},
		{Name: "Support Agent", Email: "support@example.com", Password: hashed, Role: constants.ROLE_SUPPORT},
	}
	for _, user := range users {
		if err := db.Where(model.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed user:", user.Email, "error:", err)
		}
	}

	venue := model.Venue{Name: "Grand Arena", City: "New York", TotalCapacity: 500, Address: "123 Broadway"}
	if err := db.Where(model.Venue{Name: venue.Name}).FirstOrCreate(&venue).Error; err != nil {
		log.Println("failed to seed venue:", err)
		return
	}

	var organizers []model.User
	db.Where("role = ?", constants.ROLE_ORGANIZER).Find(&organizers)
	for _, org := range organizers {
		var count int64
		db.Model(&model.Event{}).Where("organizer_id = ?", org.ID).Count(&count)
		if count > 0 {
			continue
		}
		event := model.Event{
			Slug:              slug.Make("Epic Event by " + org.Name),
			VenueId:           venue.ID,
			OrganizerId:       org.ID,
			Name:              "Epic Event by " + org.Name,
			Category:          "Music",
			EventDate:         time.Now().AddDate(0, 1, 0),
			TicketPrice:       1500.00,
			MaxTicketsPerUser: 4,
			Status:            model.EventUpcoming,
		}
		if err := db.Create(&event).Error; err != nil {
			log.Println("failed to seed event for organizer:", org.ID, "error:", err)
		}
	}
}
