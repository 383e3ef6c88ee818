package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Sessions carry no expiry; stale rows just accumulate until they are pruned.
// Run this from cron to drop sessions untouched for the given number of days.
func main() {
	days := flag.Int("days", 30, "delete sessions not updated in this many days")
	flag.Parse()

	godotenv.Load(".env.local")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB connection error: %v", err)
	}

	result := db.Exec(
		"DELETE FROM portal.sessions WHERE updated_at < now() - make_interval(days => ?)",
		*days,
	)
	if result.Error != nil {
		log.Fatalf("Error pruning sessions: %v", result.Error)
	}

	fmt.Printf("✓ Pruned %d session(s) older than %d days\n", result.RowsAffected, *days)
}
