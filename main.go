package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"ScrapBook/CronJobs"
	"ScrapBook/FiberConfig"
	"ScrapBook/Models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	Models.Connect()

	if path := os.Getenv("SEED_RATES_FILE"); path != "" {
		if err := Models.SeedScrapTypes(path); err != nil {
			log.Printf("Rate seed failed: %v\n", err)
		}
	}

	refresher := CronJobs.NewBalanceRefresher(Models.DB, false)
	if err := refresher.Start(); err != nil {
		log.Printf("Failed to start balance refresher: %v\n", err)
	}
	defer refresher.Stop()

	FiberConfig.FiberConfig()
}
