package mbta

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// RouteStops fetches the ordered stop sequence of a route in one direction.
func (c *Client) RouteStops(ctx context.Context, routeID string, directionID int) ([]string, error) {
	query := url.Values{}
	query.Set("filter[route]", routeID)
	query.Set("filter[direction_id]", fmt.Sprint(directionID))

	var response stopsResponse
	if err := c.get(ctx, "/stops", query, &response); err != nil {
		return nil, err
	}

	var stopIDs []string
	for _, stop := range response.Data {
		stopIDs = append(stopIDs, stop.ID)
	}

	return stopIDs, nil
}

// StopParents resolves child stop ids to their parent station ids. Stops
// with no parent station resolve to themselves.
func (c *Client) StopParents(ctx context.Context, stopIDs []string) (map[string]string, error) {
	parents := map[string]string{}
	if len(stopIDs) == 0 {
		return parents, nil
	}

	query := url.Values{}
	query.Set("filter[id]", strings.Join(stopIDs, ","))

	var response stopsResponse
	if err := c.get(ctx, "/stops", query, &response); err != nil {
		return nil, err
	}

	for _, stop := range response.Data {
		parentID := stop.ID
		if stop.Relationships.ParentStation != nil && stop.Relationships.ParentStation.Data != nil {
			parentID = stop.Relationships.ParentStation.Data.ID
		}
		parents[stop.ID] = parentID
	}

	return parents, nil
}
