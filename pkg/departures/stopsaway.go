package departures

import (
	"golang.org/x/exp/slices"
)

// Beyond this many stops the count stops being useful information
const maxStopsAway = 20

// StopsBetween counts how many stops separate a vehicle's current stop from
// the stop a prediction is for, along the route's ordered stop sequence.
// Child stop identifiers are resolved to their parent station first as the
// route sequence is expressed in parent stations.
//
// Returns 0 when either stop cannot be located on the route or when the
// count is out of the useful range.
func StopsBetween(routeStops []string, parentOf map[string]string, vehicleStopID string, targetStopID string) int {
	if len(routeStops) == 0 || vehicleStopID == "" || targetStopID == "" {
		return 0
	}

	vehicleIndex := slices.Index(routeStops, resolveParent(parentOf, vehicleStopID))
	targetIndex := slices.Index(routeStops, resolveParent(parentOf, targetStopID))

	if vehicleIndex < 0 || targetIndex < 0 {
		return 0
	}

	count := targetIndex - vehicleIndex
	if count < 0 {
		count = -count
	}

	if count == 0 || count > maxStopsAway {
		return 0
	}

	return count
}

func resolveParent(parentOf map[string]string, stopID string) string {
	if parent, ok := parentOf[stopID]; ok && parent != "" {
		return parent
	}

	return stopID
}
