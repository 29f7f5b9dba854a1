package ticket

// TripCategory is the traveler-declared shape of the booking.
type TripCategory string

const (
	TripOneWay    TripCategory = "one_way"
	TripRoundTrip TripCategory = "round_trip"
	TripMultiCity TripCategory = "multi_city"
)

// Valid reports whether the category is one of the known values
func (c TripCategory) Valid() bool {
	switch c {
	case TripOneWay, TripRoundTrip, TripMultiCity:
		return true
	}
	return false
}

// Journey represents one reconstructed leg of travel. Every field is
// best-effort: an empty string means the ticket text never yielded the
// value, which is a valid state, not an error.
type Journey struct {
	PNR              string `json:"pnr,omitempty" bson:"pnr,omitempty"`
	Airline          string `json:"airline,omitempty" bson:"airline,omitempty"`
	FlightNumber     string `json:"flight_number,omitempty" bson:"flightNumber,omitempty"`
	DepartureCity    string `json:"departure_city,omitempty" bson:"departureCity,omitempty"`
	DepartureAirport string `json:"departure_airport,omitempty" bson:"departureAirport,omitempty"`
	DepartureDate    string `json:"departure_date,omitempty" bson:"departureDate,omitempty"`
	DepartureTime    string `json:"departure_time,omitempty" bson:"departureTime,omitempty"`
	ArrivalCity      string `json:"arrival_city,omitempty" bson:"arrivalCity,omitempty"`
	ArrivalAirport   string `json:"arrival_airport,omitempty" bson:"arrivalAirport,omitempty"`
	ArrivalDate      string `json:"arrival_date,omitempty" bson:"arrivalDate,omitempty"`
	ArrivalTime      string `json:"arrival_time,omitempty" bson:"arrivalTime,omitempty"`
	SeatNumber       string `json:"seat_number,omitempty" bson:"seatNumber,omitempty"`
	PassengerName    string `json:"passenger_name,omitempty" bson:"passengerName,omitempty"`
}

// RequestedLeg is the traveler-declared intention for one direction.
// All fields are optional; absent fields never contradict a journey.
type RequestedLeg struct {
	DepartureCity string `json:"departure_city"`
	ArrivalCity   string `json:"arrival_city"`
	DepartureDate string `json:"departure_date"`
}

// Discrepancy field names as they appear in responses.
const (
	FieldFrom = "From"
	FieldTo   = "To"
	FieldDate = "Date"
)

// Discrepancy records one field-level mismatch between a requested leg
// and an extracted journey.
type Discrepancy struct {
	Field     string `json:"field"`
	Requested string `json:"requested"`
	Extracted string `json:"extracted"`
}

// MatchResult pairs a journey with the outcome of comparing it against
// one requested leg.
type MatchResult struct {
	Journey       *Journey
	Matched       bool
	Discrepancies []Discrepancy
}
