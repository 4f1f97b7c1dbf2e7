package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/transitstats/TransitStats_Go/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default/environment variables")
	}

	// Construct connection string
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	dbPool, err := database.NewPool(connString, 4, 30*time.Minute, time.Hour)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	ctx := context.Background()

	// Dump Users
	fmt.Println("--- Users ---")
	rows, err := dbPool.Query(ctx, "SELECT user_id, username, is_pro, current_streak, longest_streak FROM users ORDER BY user_id")
	if err != nil {
		log.Printf("Failed to query users: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var id, username string
			var isPro bool
			var current, longest int
			if err := rows.Scan(&id, &username, &isPro, &current, &longest); err != nil {
				log.Printf("Failed to scan user: %v", err)
			}
			fmt.Printf("ID: %s, Username: %s, Pro: %v, Streak: %d/%d\n", id, username, isPro, current, longest)
		}
	}

	// Dump recent rides
	fmt.Println("\n--- Recent Rides ---")
	rows, err = dbPool.Query(ctx, `
		SELECT ride_id, user_id, type, line, start_time, distance_km, in_progress
		FROM rides
		ORDER BY start_time DESC
		LIMIT 20
	`)
	if err != nil {
		log.Printf("Failed to query rides: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var id, userID, rideType, line string
			var startTime interface{}
			var distanceKm float64
			var inProgress bool
			if err := rows.Scan(&id, &userID, &rideType, &line, &startTime, &distanceKm, &inProgress); err != nil {
				log.Printf("Failed to scan ride: %v", err)
			}
			fmt.Printf("ID: %s, User: %s, Type: %s, Line: %s, Start: %v, Km: %.2f, Open: %v\n",
				id, userID, rideType, line, startTime, distanceKm, inProgress)
		}
	}

	// Dump summary freshness
	fmt.Println("\n--- Stats Summaries (allTime/all) ---")
	rows, err = dbPool.Query(ctx, `
		SELECT user_id, total_rides, total_distance, co2_saved, updated_at
		FROM stats_summaries
		WHERE time_window = 'allTime' AND mode = 'all'
		ORDER BY updated_at DESC
	`)
	if err != nil {
		log.Printf("Failed to query summaries: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var userID string
			var totalRides int
			var totalDistance, co2 float64
			var updatedAt interface{}
			if err := rows.Scan(&userID, &totalRides, &totalDistance, &co2, &updatedAt); err != nil {
				log.Printf("Failed to scan summary: %v", err)
			}
			fmt.Printf("User: %s, Rides: %d, Miles: %.2f, CO2: %.2f, Updated: %v\n",
				userID, totalRides, totalDistance, co2, updatedAt)
		}
	}
}
