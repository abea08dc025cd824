package main

import (
	"flag"
	"log"

	"waterpark-pos/internal/repository"
	"waterpark-pos/pkg/database"

	"github.com/joho/godotenv"
)

// Maintenance script: wipes BOTH transaction tables. This is the only way
// transactions are ever deleted; the API never removes them.
func main() {
	yes := flag.Bool("yes", false, "confirm wiping all rental and ticket transactions")
	flag.Parse()

	if !*yes {
		log.Fatal("Refusing to wipe transactions without --yes")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	db := database.ConnectDB()
	rentalRepo := repository.NewRentalRepo(db)
	ticketRepo := repository.NewTicketRepo(db)

	rentals, err := rentalRepo.DeleteAll()
	if err != nil {
		log.Fatalf("Failed to wipe rental transactions: %v", err)
	}
	tickets, err := ticketRepo.DeleteAll()
	if err != nil {
		log.Fatalf("Failed to wipe ticket transactions: %v", err)
	}

	log.Printf("Wiped %d rental and %d ticket transactions", rentals, tickets)
}
