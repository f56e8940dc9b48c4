package mbta

// JSON:API wire format shared by the schedules, predictions and stops
// endpoints

type tripTimes struct {
	ArrivalTime   string `json:"arrival_time"`
	DepartureTime string `json:"departure_time"`
}

type resourceRef struct {
	Data resourceID `json:"data"`
}

// Same as resourceRef except the data value itself may be null
type optionalResourceRef struct {
	Data *resourceID `json:"data"`
}

type resourceID struct {
	ID string `json:"id"`
}

type scheduleResource struct {
	ID            string    `json:"id"`
	Attributes    tripTimes `json:"attributes"`
	Relationships struct {
		Trip resourceRef `json:"trip"`
	} `json:"relationships"`
}

type scheduleResponse struct {
	Data []scheduleResource `json:"data"`
}

type predictionResource struct {
	ID            string    `json:"id"`
	Attributes    tripTimes `json:"attributes"`
	Relationships struct {
		Trip    resourceRef          `json:"trip"`
		Vehicle *optionalResourceRef `json:"vehicle"`
		Stop    *resourceRef         `json:"stop"`
	} `json:"relationships"`
}

// includedResource covers both resource types a prediction request pulls in -
// vehicles (with their current stop) and stops (with their parent station)
type includedResource struct {
	Type          string `json:"type"`
	ID            string `json:"id"`
	Relationships struct {
		Stop          *optionalResourceRef `json:"stop"`
		ParentStation *optionalResourceRef `json:"parent_station"`
	} `json:"relationships"`
}

type predictionResponse struct {
	Data     []predictionResource `json:"data"`
	Included []includedResource   `json:"included"`
}

type stopResource struct {
	ID            string `json:"id"`
	Relationships struct {
		ParentStation *optionalResourceRef `json:"parent_station"`
	} `json:"relationships"`
}

type stopsResponse struct {
	Data []stopResource `json:"data"`
}
