package mbta

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mbtanext/mbtanext/pkg/departures"
)

// Schedules fetches the static timetable entries for one stop & direction.
// The minimum time filter reaches back by the lookback window so delayed
// trips are still returned and can be matched against their predictions, and
// the limit requests more entries than get displayed so enough survive
// filtering.
func (c *Client) Schedules(ctx context.Context, stop departures.Stop, now time.Time) ([]departures.TripEntry, error) {
	query := url.Values{}
	query.Set("filter[stop]", stop.StopID)
	query.Set("filter[route]", stop.RouteID)
	query.Set("filter[direction_id]", fmt.Sprint(stop.DirectionID))
	query.Set("sort", "arrival_time")
	query.Set("filter[min_time]", now.Add(-departures.LookbackWindow).Format("15:04"))
	query.Set("page[limit]", "20")

	var response scheduleResponse
	if err := c.get(ctx, "/schedules", query, &response); err != nil {
		return nil, err
	}

	var entries []departures.TripEntry
	for _, schedule := range response.Data {
		entries = append(entries, departures.TripEntry{
			TripID:        schedule.Relationships.Trip.Data.ID,
			ArrivalTime:   schedule.Attributes.ArrivalTime,
			DepartureTime: schedule.Attributes.DepartureTime,
		})
	}

	return entries, nil
}
