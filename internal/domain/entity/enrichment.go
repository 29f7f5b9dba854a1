package entity

// FlightLookupRequest asks the flight-data service about one journey leg
type FlightLookupRequest struct {
	FlightNumber     string `json:"flightNumber"`
	DepartureAirport string `json:"departureAirport,omitempty"`
	ArrivalAirport   string `json:"arrivalAirport,omitempty"`
	DepartureTime    string `json:"departureTime,omitempty"`
	ArrivalTime      string `json:"arrivalTime,omitempty"`
}

// FlightLookupResult carries the fields the flight-data service resolved.
// Times from the lookup are authoritative; the rest only fill gaps.
type FlightLookupResult struct {
	Enhanced      bool   `json:"enhanced"`
	Airline       string `json:"airline,omitempty"`
	DepartureCity string `json:"departureCity,omitempty"`
	ArrivalCity   string `json:"arrivalCity,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
}
