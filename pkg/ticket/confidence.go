package ticket

import "math"

// Fields counted toward the confidence score, per journey.
const confidenceFieldCount = 8

// ConfidenceScore grades how complete and how well-matched the
// extraction came out, as a percentage. Matched sides weigh their
// filled fields at 1.5, unmatched at 0.5. The score is capped at 95:
// a heuristic extractor never reports certainty. No journeys means 0.
func ConfidenceScore(results ...*MatchResult) int {
	var weighted float64
	var total int

	for _, r := range results {
		if r == nil || r.Journey == nil {
			continue
		}
		weight := 0.5
		if r.Matched {
			weight = 1.5
		}
		weighted += float64(countScoredFields(r.Journey)) * weight
		total += confidenceFieldCount
	}

	if total == 0 {
		return 0
	}
	score := int(math.Round(weighted / float64(total) * 100))
	if score > 95 {
		score = 95
	}
	if score < 0 {
		score = 0
	}
	return score
}

func countScoredFields(j *Journey) int {
	n := 0
	if j.PNR != "" {
		n++
	}
	if j.FlightNumber != "" {
		n++
	}
	if j.DepartureCity != "" || j.DepartureAirport != "" {
		n++
	}
	if j.ArrivalCity != "" || j.ArrivalAirport != "" {
		n++
	}
	if j.DepartureDate != "" {
		n++
	}
	if j.DepartureTime != "" {
		n++
	}
	if j.ArrivalTime != "" {
		n++
	}
	if j.SeatNumber != "" {
		n++
	}
	return n
}
