package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/mbtanext/mbtanext/pkg/departures"
	"gopkg.in/yaml.v3"
)

// StopGroup is a set of stops displayed together under one heading,
// typically all the watched stops of a single route.
type StopGroup struct {
	Title string            `yaml:"title"`
	Stops []departures.Stop `yaml:"stops"`
}

type Board struct {
	Groups []StopGroup `yaml:"groups"`
}

// Stops returns every configured stop flattened into presentation order.
func (b *Board) Stops() []departures.Stop {
	var stops []departures.Stop
	for _, group := range b.Groups {
		stops = append(stops, group.Stops...)
	}

	return stops
}

func (b *Board) Validate() error {
	if len(b.Groups) == 0 {
		return errors.New("no stop groups configured")
	}

	for _, group := range b.Groups {
		for _, stop := range group.Stops {
			if stop.RouteID == "" || stop.StopID == "" || stop.Label == "" {
				return fmt.Errorf("stop in group %q is missing a route, stop or label", group.Title)
			}
			if stop.DirectionID != 0 && stop.DirectionID != 1 {
				return fmt.Errorf("stop %s in group %q has invalid direction %d", stop.StopID, group.Title, stop.DirectionID)
			}
		}
	}

	return nil
}

// Load reads a board configuration from a YAML file, or returns the built-in
// default board when no path is given.
func Load(path string) (*Board, error) {
	if path == "" {
		return Default(), nil
	}

	configYaml, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var board Board
	if err := yaml.Unmarshal(configYaml, &board); err != nil {
		return nil, err
	}

	if err := board.Validate(); err != nil {
		return nil, err
	}

	return &board, nil
}

// Default is the built-in board - the Route 60 corridor plus the two Green
// Line D stops bracketing it.
func Default() *Board {
	return &Board{
		Groups: []StopGroup{
			{
				Title: "Route 60:",
				Stops: []departures.Stop{
					{
						RouteID:     "60",
						StopID:      "place-kencl",
						DirectionID: 0,
						Label:       "Kenmore (outbound)",
						IsOrigin:    true,
					},
					{
						RouteID:     "60",
						StopID:      "1519",
						DirectionID: 0,
						Label:       "Brookline Ave @ Fullerton (outbound)",
					},
					{
						RouteID:     "60",
						StopID:      "11366",
						DirectionID: 0,
						Label:       "Pearl St @ Brookline Village (outbound)",
					},
					{
						RouteID:     "60",
						StopID:      "1553",
						DirectionID: 1,
						Label:       "High St @ Highland Rd (inbound)",
					},
				},
			},
			{
				Title: "Green Line D:",
				Stops: []departures.Stop{
					{
						RouteID:     "Green-D",
						StopID:      "place-coecl",
						DirectionID: 0,
						Label:       "Copley (to Riverside)",
						IsOrigin:    true,
					},
					{
						RouteID:     "Green-D",
						StopID:      "place-bvmnl",
						DirectionID: 1,
						Label:       "Brookline Village (to Kenmore)",
						IsOrigin:    true,
					},
				},
			},
		},
	}
}
