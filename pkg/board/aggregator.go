package board

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/exp/slices"

	"github.com/mbtanext/mbtanext/pkg/departures"
	"github.com/mbtanext/mbtanext/pkg/mbta"
)

// Fetch produces one StopResult per configured stop, in configuration order.
//
// Every stop's schedule & prediction pair is fetched concurrently and each
// task writes into its own slot of the results slice, so stops never share
// state and a failing stop only marks its own result. The one exception is a
// rate-limited response from any fetch: continuing would just hit the same
// limit again, so the run context is cancelled, no per-stop results are
// returned and the caller gets ErrRateLimited once.
func Fetch(ctx context.Context, client *mbta.Client, stops []departures.Stop) ([]departures.StopResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]departures.StopResult, len(stops))

	p := pool.New()
	for index, stop := range stops {
		index, stop := index, stop
		p.Go(func() {
			results[index] = fetchStop(ctx, client, stop)

			if errors.Is(results[index].Err, mbta.ErrRateLimited) {
				cancel()
			}
		})
	}
	p.Wait()

	for _, result := range results {
		if errors.Is(result.Err, mbta.ErrRateLimited) {
			return nil, mbta.ErrRateLimited
		}
	}

	for _, result := range results {
		if result.Err != nil {
			log.Warn().
				Err(result.Err).
				Str("stop", result.Stop.StopID).
				Str("route", result.Stop.RouteID).
				Msg("Failed to fetch stop departures")
		}
	}

	return results, nil
}

func fetchStop(ctx context.Context, client *mbta.Client, stop departures.Stop) departures.StopResult {
	result := departures.StopResult{Stop: stop}
	now := time.Now()

	var scheduleEntries []departures.TripEntry
	var scheduleErr error
	var predictionSet *mbta.PredictionSet
	var predictionErr error

	p := pool.New()
	p.Go(func() {
		scheduleEntries, scheduleErr = client.Schedules(ctx, stop, now)
	})
	p.Go(func() {
		predictionSet, predictionErr = client.Predictions(ctx, stop)
	})
	p.Wait()

	if errors.Is(scheduleErr, mbta.ErrRateLimited) || errors.Is(predictionErr, mbta.ErrRateLimited) {
		result.Err = mbta.ErrRateLimited
		return result
	}
	if scheduleErr != nil {
		result.Err = scheduleErr
		return result
	}
	if predictionErr != nil {
		result.Err = predictionErr
		return result
	}

	scheduled := departures.Normalize(scheduleEntries, stop.IsOrigin, departures.SourceScheduled)
	live := departures.Normalize(predictionSet.Entries, stop.IsOrigin, departures.SourceLive)

	if err := attachStopsAway(ctx, client, stop, predictionSet.StopParents, live); err != nil {
		result.Err = err
		return result
	}

	result.Departures = departures.Merge(now, scheduled, live)

	return result
}

// attachStopsAway works out how many stops each predicted vehicle is from
// the target stop. The count is decoration on top of an already useful
// prediction, so lookup failures are logged and ignored - except a rate
// limit, which is terminal for the whole run wherever it shows up.
func attachStopsAway(ctx context.Context, client *mbta.Client, stop departures.Stop, stopParents map[string]string, live []departures.Record) error {
	tracked := false
	for _, record := range live {
		if record.VehicleStopID != "" && record.PredictionStopID != "" {
			tracked = true
			break
		}
	}
	if !tracked {
		return nil
	}

	routeStops, err := client.RouteStops(ctx, stop.RouteID, stop.DirectionID)
	if err != nil {
		if errors.Is(err, mbta.ErrRateLimited) {
			return err
		}

		log.Debug().Err(err).Str("route", stop.RouteID).Msg("Failed to fetch route stop sequence")
		return nil
	}

	// The included stop resources usually cover everything but vehicles can
	// sit at stops outside of them - resolve those separately
	var unknownStopIDs []string
	for _, record := range live {
		for _, stopID := range []string{record.VehicleStopID, record.PredictionStopID} {
			if stopID == "" {
				continue
			}
			if _, ok := stopParents[stopID]; !ok && !slices.Contains(unknownStopIDs, stopID) {
				unknownStopIDs = append(unknownStopIDs, stopID)
			}
		}
	}

	if len(unknownStopIDs) > 0 {
		resolved, err := client.StopParents(ctx, unknownStopIDs)
		if err != nil {
			if errors.Is(err, mbta.ErrRateLimited) {
				return err
			}

			log.Debug().Err(err).Msg("Failed to resolve parent stations")
		}

		for stopID, parentID := range resolved {
			stopParents[stopID] = parentID
		}
	}

	for index := range live {
		live[index].StopsAway = departures.StopsBetween(routeStops, stopParents, live[index].VehicleStopID, live[index].PredictionStopID)
	}

	return nil
}
