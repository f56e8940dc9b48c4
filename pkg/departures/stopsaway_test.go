package departures

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStopsBetween(t *testing.T) {
	routeStops := []string{"place-a", "place-b", "place-c", "place-d"}
	parents := map[string]string{
		"70001": "place-a",
		"70003": "place-c",
	}

	tests := []struct {
		name        string
		vehicleStop string
		targetStop  string
		want        int
	}{
		{name: "counts stops along the route", vehicleStop: "place-a", targetStop: "place-c", want: 2},
		{name: "resolves child stops to parent stations", vehicleStop: "70001", targetStop: "70003", want: 2},
		{name: "direction of travel does not matter", vehicleStop: "place-d", targetStop: "place-b", want: 2},
		{name: "vehicle already at the stop", vehicleStop: "place-b", targetStop: "place-b", want: 0},
		{name: "vehicle stop not on the route", vehicleStop: "place-x", targetStop: "place-b", want: 0},
		{name: "missing vehicle stop", vehicleStop: "", targetStop: "place-b", want: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, StopsBetween(routeStops, parents, test.vehicleStop, test.targetStop))
		})
	}
}

func TestStopsBetweenBounds(t *testing.T) {
	var longRoute []string
	for i := 0; i < 25; i++ {
		longRoute = append(longRoute, string(rune('a'+i)))
	}

	assert.Equal(t, 0, StopsBetween(longRoute, nil, "a", "y"))
	assert.Equal(t, 20, StopsBetween(longRoute, nil, "a", "u"))
	assert.Equal(t, 0, StopsBetween(nil, nil, "a", "b"))
}
