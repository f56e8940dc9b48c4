package departures

import (
	"time"
)

// Normalize converts raw trip entries for a single stop into departure
// records tagged with the given source.
//
// Origin stops use the departure time as vehicles have no meaningful arrival
// there. Every other stop uses the arrival time, falling back to the
// departure time when the feed omits it for a trip. Entries with no usable
// time at all are skipped rather than failing the whole set - the MBTA feeds
// regularly contain trips with null times for skipped or dropped stops.
//
// The source APIs do not guarantee any ordering so none is assumed here and
// none is produced - ordering is the merge step's job.
func Normalize(entries []TripEntry, isOrigin bool, source Source) []Record {
	var records []Record

	for _, entry := range entries {
		timeValue := entry.ArrivalTime
		if isOrigin {
			timeValue = entry.DepartureTime
		} else if timeValue == "" {
			timeValue = entry.DepartureTime
		}

		if timeValue == "" {
			continue
		}

		parsedTime, err := time.Parse(time.RFC3339, timeValue)
		if err != nil {
			continue
		}

		records = append(records, Record{
			Time:   parsedTime,
			Source: source,
			TripID: entry.TripID,

			VehicleStopID:    entry.VehicleStopID,
			PredictionStopID: entry.PredictionStopID,
		})
	}

	return records
}
