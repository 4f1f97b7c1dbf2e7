package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Seed database with data (test, staging)"
}

func (c *SeedCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: test, staging")
	}
	subcmd := args[0]

	dbURL := buildDBURL()
	PrintInfo("Connecting to database: %s", redactPassword(dbURL))

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	switch subcmd {
	case "test":
		return c.runSeeds(db, []string{
			"internal/database/seeds/test_users.sql",
			"internal/database/seeds/test_rides.sql",
		})
	case "staging":
		// Staging only gets users; rides come from real traffic
		return c.runSeeds(db, []string{
			"internal/database/seeds/test_users.sql",
		})
	default:
		return fmt.Errorf("unknown subcommand: %s", subcmd)
	}
}

func (c *SeedCommand) runSeeds(db *sql.DB, files []string) error {
	for _, file := range files {
		if err := c.executeFile(db, file); err != nil {
			return err
		}
	}

	PrintSuccess("Seeds completed successfully")
	return nil
}

func (c *SeedCommand) executeFile(db *sql.DB, filepath string) error {
	PrintInfo("Executing %s...", filepath)

	content, err := os.ReadFile(filepath) // #nosec G304 - paths are fixed above
	if err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", filepath, err)
	}

	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute seed file %s: %w", filepath, err)
	}

	return nil
}

// redactPassword hides the password portion of a postgres URL for logging
func redactPassword(connStr string) string {
	at := strings.Index(connStr, "@")
	if at < 0 {
		return connStr
	}
	scheme := strings.Index(connStr, "://")
	if scheme < 0 {
		return connStr
	}
	creds := connStr[scheme+3 : at]
	colon := strings.Index(creds, ":")
	if colon < 0 {
		return connStr
	}
	return connStr[:scheme+3] + creds[:colon] + ":***" + connStr[at:]
}
