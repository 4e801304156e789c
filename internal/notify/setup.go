package notify

import (
	"log"

	"github.com/CareerPrix/CP-Backend/internal/db"
)

func Init() {
	if err := db.EnsureUUIDExtension(db.DB); err != nil {
		log.Fatal("Failed to ensure uuid-ossp extension: ", err)
	}

	if err := db.EnsureSchema(db.DB, "notify"); err != nil {
		log.Fatal("Failed to ensure schema notify: ", err)
	}

	if err := db.DB.AutoMigrate(&Notification{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
