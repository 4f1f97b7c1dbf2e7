package domain

import "time"

// TransitType identifies the vehicle class of a ride
type TransitType string

const (
	TransitBus   TransitType = "bus"
	TransitTrain TransitType = "train"
)

// IsValid reports whether the transit type is a known value
func (t TransitType) IsValid() bool {
	return t == TransitBus || t == TransitTrain
}

// Ride represents a single transit trip owned by one user.
// A ride is mutable while InProgress is true and immutable once ended,
// except for corrections applied through the command operations.
type Ride struct {
	ID              string      `json:"ride_id"`
	UserID          string      `json:"user_id"`
	Type            TransitType `json:"type"`
	Line            string      `json:"line,omitempty"`
	StartStop       string      `json:"start_stop"`
	EndStop         string      `json:"end_stop,omitempty"`
	StartTime       time.Time   `json:"start_time"`
	DistanceKm      float64     `json:"distance_km"`
	DurationMinutes int         `json:"duration_minutes"`
	StopCount       int         `json:"stop_count,omitempty"`
	InProgress      bool        `json:"in_progress"`
	ManualEntry     bool        `json:"manual_entry"`
	// Live-tracking accumulators, only meaningful while InProgress
	DistanceMiles   float64 `json:"distance_miles,omitempty"`
	DurationSeconds int     `json:"duration_seconds,omitempty"`
	// Set when an update looks like sensor noise rather than a real trip
	SuspectedFalseRide bool `json:"suspected_false_ride,omitempty"`
}

// Unit conversions used when finalizing live rides
const (
	MilesToKm        = 1.60934
	KmToMiles        = 0.621371
	SecondsPerMinute = 60
)

// CO2 savings per km relative to driving, by transit type
const (
	CO2PerKmBus   = 0.15
	CO2PerKmTrain = 0.20
)

// Fare charged per paid session, by transit type
const (
	FareBus   = 2.25
	FareTrain = 2.50
)

// SessionGap is the transfer window: rides starting within this gap of the
// last charged ride share one fare.
const SessionGap = 2 * time.Hour

// Fare returns the fare a ride of this type would be charged
func (t TransitType) Fare() float64 {
	if t == TransitBus {
		return FareBus
	}
	return FareTrain
}

// CO2PerKm returns the CO2 savings factor for this transit type
func (t TransitType) CO2PerKm() float64 {
	if t == TransitBus {
		return CO2PerKmBus
	}
	return CO2PerKmTrain
}

// CO2Saved returns the CO2 savings for the ride's recorded distance
func (r *Ride) CO2Saved() float64 {
	return r.DistanceKm * r.Type.CO2PerKm()
}

// IsLoop reports whether the ride started and ended at the same stop
func (r *Ride) IsLoop() bool {
	return r.StartStop != "" && r.EndStop != "" && r.StartStop == r.EndStop
}
