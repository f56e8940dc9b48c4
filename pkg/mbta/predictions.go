package mbta

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mbtanext/mbtanext/pkg/departures"
)

// PredictionSet is the live predictions for one stop plus the side-loaded
// reference data needed to work out how far away each vehicle is.
type PredictionSet struct {
	Entries []departures.TripEntry

	// Child stop id to parent station id, from the included stop resources.
	// Stops with no parent map to themselves.
	StopParents map[string]string
}

// Predictions fetches the live predictions for one stop & direction,
// including each prediction's vehicle so its current stop is known.
func (c *Client) Predictions(ctx context.Context, stop departures.Stop) (*PredictionSet, error) {
	query := url.Values{}
	query.Set("filter[stop]", stop.StopID)
	query.Set("filter[route]", stop.RouteID)
	query.Set("filter[direction_id]", fmt.Sprint(stop.DirectionID))
	query.Set("sort", "arrival_time")
	query.Set("page[limit]", "3")
	query.Set("include", "vehicle,stop")

	var response predictionResponse
	if err := c.get(ctx, "/predictions", query, &response); err != nil {
		return nil, err
	}

	// Current stop of each included vehicle & parent station of each
	// included stop
	vehicleStops := map[string]string{}
	stopParents := map[string]string{}
	for _, included := range response.Included {
		switch included.Type {
		case "vehicle":
			if included.Relationships.Stop != nil && included.Relationships.Stop.Data != nil {
				vehicleStops[included.ID] = included.Relationships.Stop.Data.ID
			}
		case "stop":
			parentID := included.ID
			if included.Relationships.ParentStation != nil && included.Relationships.ParentStation.Data != nil {
				parentID = included.Relationships.ParentStation.Data.ID
			}
			stopParents[included.ID] = parentID
		}
	}

	set := &PredictionSet{
		StopParents: stopParents,
	}

	for _, prediction := range response.Data {
		entry := departures.TripEntry{
			TripID:        prediction.Relationships.Trip.Data.ID,
			ArrivalTime:   prediction.Attributes.ArrivalTime,
			DepartureTime: prediction.Attributes.DepartureTime,
		}

		if prediction.Relationships.Vehicle != nil && prediction.Relationships.Vehicle.Data != nil {
			entry.VehicleStopID = vehicleStops[prediction.Relationships.Vehicle.Data.ID]
		}
		if prediction.Relationships.Stop != nil {
			entry.PredictionStopID = prediction.Relationships.Stop.Data.ID
		}

		set.Entries = append(set.Entries, entry)
	}

	return set, nil
}
