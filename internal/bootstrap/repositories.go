package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/transitstats/TransitStats_Go/internal/achievement"
	"github.com/transitstats/TransitStats_Go/internal/database/postgres"
	"github.com/transitstats/TransitStats_Go/internal/leaderboard"
	"github.com/transitstats/TransitStats_Go/internal/ride"
	"github.com/transitstats/TransitStats_Go/internal/stats"
	"github.com/transitstats/TransitStats_Go/internal/user"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Ride        ride.Repository
	Stats       stats.Repository
	Leaderboard leaderboard.Repository
	Achievement achievement.Repository
	User        user.Repository
}

// InitializeRepositories creates all repository implementations.
// Every repository only needs the database pool.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Ride:        postgres.NewRideRepository(dbPool),
		Stats:       postgres.NewStatsRepository(dbPool),
		Leaderboard: postgres.NewLeaderboardRepository(dbPool),
		Achievement: postgres.NewAchievementRepository(dbPool),
		User:        postgres.NewUserRepository(dbPool),
	}
}
