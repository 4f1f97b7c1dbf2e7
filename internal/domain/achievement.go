package domain

import "time"

// AchievementID is a closed enumeration of every achievement the engine can
// unlock. Ids arriving from the catalog that are not in this set are skipped.
type AchievementID string

// Ride count milestones
const (
	AchGettingStarted AchievementID = "getting_started"
	AchGettingTheHang AchievementID = "getting_the_hang"
	AchCityCommuter   AchievementID = "city_commuter"
	AchTransitRegular AchievementID = "transit_regular"
	AchTransitHero    AchievementID = "transit_hero"
	AchUltimateRider  AchievementID = "ultimate_rider"
)

// Distance milestones
const (
	AchWarmingUp      AchievementID = "warming_up"
	AchRollingAlong   AchievementID = "rolling_along"
	AchTransitStar    AchievementID = "transit_star"
	AchTransitVeteran AchievementID = "transit_veteran"
	AchMasterOfTheMap AchievementID = "master_of_the_map"
)

// CO2 milestones
const (
	AchCarbonKicker       AchievementID = "carbon_kicker"
	AchEcoRider           AchievementID = "eco_rider"
	AchPlanetMover        AchievementID = "planet_mover"
	AchGreenMachine       AchievementID = "green_machine"
	AchSustainabilityHero AchievementID = "sustainability_hero"
)

// Streak milestones
const (
	AchQuickStreak    AchievementID = "quick_streak"
	AchOneWeekWarrior AchievementID = "one_week_warrior"
	AchOnARoll        AchievementID = "on_a_roll"
	AchLoyalist       AchievementID = "cta_loyalist"
	AchUnstoppable    AchievementID = "unstoppable"
)

// Specialty achievements evaluated per ride
const (
	AchNightOwl        AchievementID = "night_owl"
	AchEarlyBird       AchievementID = "early_bird"
	AchLoopDeLoop      AchievementID = "loop_de_loop"
	AchOneStopWonder   AchievementID = "one_stop_wonder"
	AchScenicRoute     AchievementID = "scenic_route"
	AchAllAboard       AchievementID = "all_aboard"
	AchWheelsOfTheCity AchievementID = "wheels_of_the_city"
	AchSharingIsCaring AchievementID = "sharing_is_caring"
	AchProStatus       AchievementID = "pro_status"
)

// ThresholdKind classifies what metric an achievement watches
type ThresholdKind string

const (
	ThresholdRides     ThresholdKind = "rides"
	ThresholdDistance  ThresholdKind = "distance"
	ThresholdCO2       ThresholdKind = "co2"
	ThresholdStreak    ThresholdKind = "streak"
	ThresholdSpecialty ThresholdKind = "specialty"
)

// Achievement is a global catalog entry
type Achievement struct {
	ID            AchievementID `json:"achievement_id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Category      string        `json:"category"`
	ThresholdKind ThresholdKind `json:"threshold_kind"`
}

// UnlockedAchievement is a per-user fact created exactly once and never
// revoked, with the single exception of pro_status which tracks a flag.
type UnlockedAchievement struct {
	UserID      string        `json:"user_id"`
	ID          AchievementID `json:"achievement_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	UnlockedAt  time.Time     `json:"unlocked_at"`
}

// AchievementNotification is the UI side effect record written atomically
// with the unlock so the client can show a popup exactly once.
type AchievementNotification struct {
	UserID      string        `json:"user_id"`
	ID          AchievementID `json:"achievement_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Shown       bool          `json:"shown"`
	UnlockedAt  time.Time     `json:"unlocked_at"`
}
