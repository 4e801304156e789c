package grandprix

import (
	"log"

	"github.com/CareerPrix/CP-Backend/internal/db"
)

func Init() {
	if err := db.EnsureUUIDExtension(db.DB); err != nil {
		log.Fatal("Failed to ensure uuid-ossp extension: ", err)
	}

	if err := db.EnsureSchema(db.DB, "grandprix"); err != nil {
		log.Fatal("Failed to ensure schema grandprix: ", err)
	}

	if err := db.DB.AutoMigrate(&Contest{}, &Entry{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
