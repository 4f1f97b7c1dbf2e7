package achievement

import "github.com/transitstats/TransitStats_Go/internal/domain"

// Threshold pairs a metric value with the achievement it unlocks
type Threshold struct {
	Value float64
	ID    domain.AchievementID
}

// Ascending threshold catalogs for the monotonic counters. Order matters:
// CrossedThresholds walks them in order and relies on ascending values.
var (
	rideThresholds = []Threshold{
		{1, domain.AchGettingStarted},
		{10, domain.AchGettingTheHang},
		{25, domain.AchCityCommuter},
		{50, domain.AchTransitRegular},
		{100, domain.AchTransitHero},
		{250, domain.AchUltimateRider},
	}

	distanceThresholds = []Threshold{
		{10, domain.AchWarmingUp},
		{25, domain.AchRollingAlong},
		{50, domain.AchTransitStar},
		{100, domain.AchTransitVeteran},
		{250, domain.AchMasterOfTheMap},
	}

	co2Thresholds = []Threshold{
		{10, domain.AchCarbonKicker},
		{25, domain.AchEcoRider},
		{50, domain.AchPlanetMover},
		{100, domain.AchGreenMachine},
		{250, domain.AchSustainabilityHero},
	}

	streakThresholds = []Threshold{
		{3, domain.AchQuickStreak},
		{7, domain.AchOneWeekWarrior},
		{14, domain.AchOnARoll},
		{30, domain.AchLoyalist},
		{60, domain.AchUnstoppable},
	}
)

// CrossedThresholds returns every achievement whose threshold lies in
// (before, after]. A single ride crosses at most one, but an authoritative
// recompute can span several when it repairs a stale summary. Never match on
// the absolute value alone: that would re-fire on every write past a
// threshold.
func CrossedThresholds(thresholds []Threshold, before, after float64) []domain.AchievementID {
	var crossed []domain.AchievementID
	for _, t := range thresholds {
		if before < t.Value && after >= t.Value {
			crossed = append(crossed, t.ID)
		}
	}
	return crossed
}

// catalog is the closed set of achievements the engine can unlock, keyed by
// id. Ids outside this set are skipped as non-fatal.
var catalog = map[domain.AchievementID]domain.Achievement{
	domain.AchGettingStarted: {ID: domain.AchGettingStarted, Name: "Getting Started", Description: "Complete your first ride", Category: "rides", ThresholdKind: domain.ThresholdRides},
	domain.AchGettingTheHang: {ID: domain.AchGettingTheHang, Name: "Getting the Hang", Description: "Complete 10 rides", Category: "rides", ThresholdKind: domain.ThresholdRides},
	domain.AchCityCommuter:   {ID: domain.AchCityCommuter, Name: "City Commuter", Description: "Complete 25 rides", Category: "rides", ThresholdKind: domain.ThresholdRides},
	domain.AchTransitRegular: {ID: domain.AchTransitRegular, Name: "Transit Regular", Description: "Complete 50 rides", Category: "rides", ThresholdKind: domain.ThresholdRides},
	domain.AchTransitHero:    {ID: domain.AchTransitHero, Name: "Transit Hero", Description: "Complete 100 rides", Category: "rides", ThresholdKind: domain.ThresholdRides},
	domain.AchUltimateRider:  {ID: domain.AchUltimateRider, Name: "Ultimate Rider", Description: "Complete 250 rides", Category: "rides", ThresholdKind: domain.ThresholdRides},

	domain.AchWarmingUp:      {ID: domain.AchWarmingUp, Name: "Warming Up", Description: "Travel 10 km by transit", Category: "distance", ThresholdKind: domain.ThresholdDistance},
	domain.AchRollingAlong:   {ID: domain.AchRollingAlong, Name: "Rolling Along", Description: "Travel 25 km by transit", Category: "distance", ThresholdKind: domain.ThresholdDistance},
	domain.AchTransitStar:    {ID: domain.AchTransitStar, Name: "Transit Star", Description: "Travel 50 km by transit", Category: "distance", ThresholdKind: domain.ThresholdDistance},
	domain.AchTransitVeteran: {ID: domain.AchTransitVeteran, Name: "Transit Veteran", Description: "Travel 100 km by transit", Category: "distance", ThresholdKind: domain.ThresholdDistance},
	domain.AchMasterOfTheMap: {ID: domain.AchMasterOfTheMap, Name: "Master of the Map", Description: "Travel 250 km by transit", Category: "distance", ThresholdKind: domain.ThresholdDistance},

	domain.AchCarbonKicker:       {ID: domain.AchCarbonKicker, Name: "Carbon Kicker", Description: "Save 10 kg of CO2", Category: "co2", ThresholdKind: domain.ThresholdCO2},
	domain.AchEcoRider:           {ID: domain.AchEcoRider, Name: "Eco Rider", Description: "Save 25 kg of CO2", Category: "co2", ThresholdKind: domain.ThresholdCO2},
	domain.AchPlanetMover:        {ID: domain.AchPlanetMover, Name: "Planet Mover", Description: "Save 50 kg of CO2", Category: "co2", ThresholdKind: domain.ThresholdCO2},
	domain.AchGreenMachine:       {ID: domain.AchGreenMachine, Name: "Green Machine", Description: "Save 100 kg of CO2", Category: "co2", ThresholdKind: domain.ThresholdCO2},
	domain.AchSustainabilityHero: {ID: domain.AchSustainabilityHero, Name: "Sustainability Hero", Description: "Save 250 kg of CO2", Category: "co2", ThresholdKind: domain.ThresholdCO2},

	domain.AchQuickStreak:    {ID: domain.AchQuickStreak, Name: "Quick Streak", Description: "Ride 3 days in a row", Category: "streaks", ThresholdKind: domain.ThresholdStreak},
	domain.AchOneWeekWarrior: {ID: domain.AchOneWeekWarrior, Name: "One Week Warrior", Description: "Ride 7 days in a row", Category: "streaks", ThresholdKind: domain.ThresholdStreak},
	domain.AchOnARoll:        {ID: domain.AchOnARoll, Name: "On a Roll", Description: "Ride 14 days in a row", Category: "streaks", ThresholdKind: domain.ThresholdStreak},
	domain.AchLoyalist:       {ID: domain.AchLoyalist, Name: "CTA Loyalist", Description: "Ride 30 days in a row", Category: "streaks", ThresholdKind: domain.ThresholdStreak},
	domain.AchUnstoppable:    {ID: domain.AchUnstoppable, Name: "Unstoppable", Description: "Ride 60 days in a row", Category: "streaks", ThresholdKind: domain.ThresholdStreak},

	domain.AchNightOwl:        {ID: domain.AchNightOwl, Name: "Night Owl", Description: "Start a live ride at 11pm or later", Category: "specialty", ThresholdKind: domain.ThresholdSpecialty},
	domain.AchEarlyBird:       {ID: domain.AchEarlyBird, Name: "Early Bird", Description: "Start a live ride before 6am", Category: "specialty", ThresholdKind: domain.ThresholdSpecialty},
	domain.AchLoopDeLoop:      {ID: domain.AchLoopDeLoop, Name: "Loop-de-Loop", Description: "End a ride at the stop where it began", Category: "specialty", ThresholdKind: domain.ThresholdSpecialty},
	domain.AchOneStopWonder:   {ID: domain.AchOneStopWonder, Name: "One Stop Wonder", Description: "Take a ride of exactly one stop", Category: "specialty", ThresholdKind: domain.ThresholdSpecialty},
	domain.AchScenicRoute:     {ID: domain.AchScenicRoute, Name: "Scenic Route", Description: "Take a ride of 15 stops or more", Category: "specialty", ThresholdKind: domain.ThresholdSpecialty},
	domain.AchAllAboard:       {ID: domain.AchAllAboard, Name: "All Aboard", Description: "Ride every train line", Category: "specialty", ThresholdKind: domain.ThresholdSpecialty},
	domain.AchWheelsOfTheCity: {ID: domain.AchWheelsOfTheCity, Name: "Wheels of the City", Description: "Ride 120 different bus lines", Category: "specialty", ThresholdKind: domain.ThresholdSpecialty},
	domain.AchSharingIsCaring: {ID: domain.AchSharingIsCaring, Name: "Sharing is Caring", Description: "Share your stats for the first time", Category: "specialty", ThresholdKind: domain.ThresholdSpecialty},
	domain.AchProStatus:       {ID: domain.AchProStatus, Name: "Pro Status", Description: "Become a pro rider", Category: "specialty", ThresholdKind: domain.ThresholdSpecialty},
}

// Lookup resolves a catalog entry by id
func Lookup(id domain.AchievementID) (domain.Achievement, bool) {
	a, ok := catalog[id]
	return a, ok
}

// CatalogSize returns the number of achievements in the catalog
func CatalogSize() int {
	return len(catalog)
}
