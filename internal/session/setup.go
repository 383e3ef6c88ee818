package session

import (
	"log"

	"github.com/ClinicaVital/CV-Portal/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "portal"); err != nil {
		log.Fatal("Failed to ensure schema portal: ", err)
	}

	if err := db.DB.AutoMigrate(&Session{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
