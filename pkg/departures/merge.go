package departures

import (
	"sort"
	"time"
)

const (
	// LookbackWindow is how far into the past a scheduled trip is retained
	// for matching against the prediction feed. Delayed trips can still have
	// live predictions long after their scheduled time has passed.
	LookbackWindow = 30 * time.Minute

	// StalenessCutoff is how far into the past a merged departure may be
	// before it is considered already departed and dropped from display.
	// Stricter than LookbackWindow - the two govern different stages and are
	// kept separate on purpose.
	StalenessCutoff = 5 * time.Minute

	// MaxDepartures is the number of upcoming departures shown per stop.
	MaxDepartures = 3
)

// Merge combines one stop's scheduled and live records into the final list of
// up to MaxDepartures upcoming departures.
//
// Records are keyed by trip so that a live prediction always replaces the
// scheduled entry for the same trip, and a scheduled entry never replaces an
// existing live one. Prediction-only trips (extras not in the timetable)
// participate as normal candidates. An empty result is a valid outcome
// meaning nothing is upcoming right now.
func Merge(now time.Time, scheduled []Record, live []Record) []Departure {
	bestByTrip := map[string]Record{}

	lookbackCutoff := now.Add(-LookbackWindow)
	for _, record := range scheduled {
		if record.Time.Before(lookbackCutoff) {
			continue
		}

		if existing, ok := bestByTrip[record.TripID]; ok && existing.Source == SourceLive {
			continue
		}

		bestByTrip[record.TripID] = record
	}

	for _, record := range live {
		bestByTrip[record.TripID] = record
	}

	stalenessCutoff := now.Add(-StalenessCutoff)
	var candidates []Record
	for _, record := range bestByTrip {
		if record.Time.Before(stalenessCutoff) {
			continue
		}

		candidates = append(candidates, record)
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if !candidates[a].Time.Equal(candidates[b].Time) {
			return candidates[a].Time.Before(candidates[b].Time)
		}

		// Identical timestamps - prefer the live record, then order by trip
		// so repeated runs always agree
		if candidates[a].Source != candidates[b].Source {
			return candidates[a].Source == SourceLive
		}

		return candidates[a].TripID < candidates[b].TripID
	})

	if len(candidates) > MaxDepartures {
		candidates = candidates[:MaxDepartures]
	}

	var departures []Departure
	for rank, record := range candidates {
		departures = append(departures, Departure{
			Time:   record.Time,
			Source: record.Source,
			Rank:   rank,

			StopsAway: record.StopsAway,
		})
	}

	return departures
}
