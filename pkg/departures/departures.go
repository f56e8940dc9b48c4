package departures

import (
	"time"
)

type Source string

const (
	SourceScheduled Source = "Scheduled"
	SourceLive      Source = "Live"
)

// Stop is one statically configured stop on a route, in one direction of
// travel. IsOrigin marks stops at the start of a route where the departure
// time, not the arrival time, is the meaningful field.
type Stop struct {
	RouteID     string `yaml:"route"`
	StopID      string `yaml:"stop"`
	DirectionID int    `yaml:"direction"`
	Label       string `yaml:"label"`
	IsOrigin    bool   `yaml:"origin"`
}

// TripEntry is one raw trip record as returned by a schedule or prediction
// endpoint, before any time field selection has happened. Either time may be
// empty. The vehicle & prediction stop identifiers are only populated on
// prediction entries that carry vehicle position data.
type TripEntry struct {
	TripID        string
	ArrivalTime   string
	DepartureTime string

	VehicleStopID    string
	PredictionStopID string
}

// Record is one potential departure produced by normalizing a TripEntry.
type Record struct {
	Time   time.Time
	Source Source
	TripID string

	VehicleStopID    string
	PredictionStopID string
	StopsAway        int
}

// Departure is one entry in the final merged output for a stop.
type Departure struct {
	Time   time.Time
	Source Source
	Rank   int

	// StopsAway is how many stops the vehicle is from this stop, when known.
	// Zero means unknown.
	StopsAway int
}

// StopResult holds the outcome of one run for one configured stop - either a
// merged list of upcoming departures (possibly empty) or the failure that
// prevented it.
type StopResult struct {
	Stop       Stop
	Departures []Departure
	Err        error
}
