package domain

import "time"

// StatsSummary holds the aggregate scalars for one (user, window, mode) key.
// Invariant: TotalTimeHours*60 + TotalTimeRemainingMinutes == TotalTimeMinutes.
type StatsSummary struct {
	UserID                    string    `json:"user_id"`
	Window                    Window    `json:"window"`
	Mode                      Mode      `json:"mode"`
	TotalDistance             float64   `json:"total_distance"`
	AverageDistancePerWeek    float64   `json:"average_distance_per_week"`
	TotalTimeMinutes          int       `json:"total_time_minutes"`
	TotalTimeHours            int       `json:"total_time_hours"`
	TotalTimeRemainingMinutes int       `json:"total_time_remaining_minutes"`
	TotalRides                int       `json:"total_rides"`
	TotalCost                 float64   `json:"total_cost"`
	CostPerMile               float64   `json:"cost_per_mile"`
	CO2Saved                  float64   `json:"co2_saved"`
	MostUsedLine              string    `json:"most_used_line,omitempty"`
	MostUsedLineCount         int       `json:"most_used_line_count,omitempty"`
	LongestRideMiles          float64   `json:"longest_ride_miles"`
	LongestRideLine           string    `json:"longest_ride_line,omitempty"`
	LongestRideRoute          string    `json:"longest_ride_route,omitempty"`
	// Month-over-month deltas, populated for the all-time window only
	RideCountChange int       `json:"ride_count_change"`
	CO2Change       float64   `json:"co2_change"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SplitTime recomputes the hours/remainder pair from TotalTimeMinutes
func (s *StatsSummary) SplitTime() {
	s.TotalTimeHours = s.TotalTimeMinutes / 60
	s.TotalTimeRemainingMinutes = s.TotalTimeMinutes % 60
}

// LineStats is a per-line breakdown used by the detail rankings
type LineStats struct {
	Line            string  `json:"line"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	TotalMinutes    int     `json:"total_minutes"`
	RideCount       int     `json:"ride_count"`
	CO2Kg           float64 `json:"co2_kg"`
}

// LineCost ranks a line by its cost per mile
type LineCost struct {
	Line        string  `json:"line"`
	CostPerMile float64 `json:"cost_per_mile"`
}

// RideDigest is the slim ride projection kept in the longest-ride ranking
type RideDigest struct {
	RideID     string  `json:"ride_id"`
	Line       string  `json:"line,omitempty"`
	DistanceKm float64 `json:"distance_km"`
	StartStop  string  `json:"start_stop,omitempty"`
	EndStop    string  `json:"end_stop,omitempty"`
	StopCount  int     `json:"stop_count"`
}

// MostUsedLineDetails describes the user's most ridden line
type MostUsedLineDetails struct {
	Line             string   `json:"line"`
	LongestRideStops int      `json:"longest_ride_stops"`
	TopStops         []string `json:"top_stops"`
}

// CostAnalysis summarizes fare spending across lines
type CostAnalysis struct {
	TotalSavings       float64    `json:"total_savings"`
	TopExpensiveRoutes []LineCost `json:"top_expensive_routes"`
}

// DetailStats holds the top-N breakdowns for one (user, window, mode) key.
// Always recomputed wholesale, never patched incrementally.
type DetailStats struct {
	UserID              string               `json:"user_id"`
	Window              Window               `json:"window"`
	Mode                Mode                 `json:"mode"`
	DistanceTopLines    []LineStats          `json:"distance_top_lines"`
	TimeTopLines        []LineStats          `json:"time_top_lines"`
	RideTopLines        []LineStats          `json:"ride_top_lines"`
	CO2TopLines         []LineStats          `json:"co2_top_lines"`
	CostAnalysis        CostAnalysis         `json:"cost_analysis"`
	MostUsedLineDetails *MostUsedLineDetails `json:"most_used_line_details,omitempty"`
	LongestRides        []RideDigest         `json:"longest_rides"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// Totals is the snapshot of the monotonic metrics the achievement engine
// watches, taken from the all-time/all-modes summary
type Totals struct {
	Rides      int     `json:"rides"`
	DistanceKm float64 `json:"distance_km"`
	CO2Kg      float64 `json:"co2_kg"`
}

// Totals extracts the crossing-relevant metrics from a summary
func (s *StatsSummary) Totals() Totals {
	return Totals{
		Rides:      s.TotalRides,
		DistanceKm: s.TotalDistance,
		CO2Kg:      s.CO2Saved,
	}
}

// StatsDelta carries the additive patch the incremental fast path applies
type StatsDelta struct {
	Distance    float64
	TimeMinutes int
	Rides       int
	Cost        float64
	CO2         float64
}

// DeltaFor derives the incremental patch one completed ride contributes.
// Sign is +1 for creation and -1 for deletion.
func DeltaFor(r *Ride, sign int) StatsDelta {
	s := float64(sign)
	return StatsDelta{
		Distance:    s * r.DistanceKm,
		TimeMinutes: sign * r.DurationMinutes,
		Rides:       sign,
		Cost:        s * r.Type.Fare(),
		CO2:         s * r.CO2Saved(),
	}
}
