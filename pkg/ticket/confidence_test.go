package ticket

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// scoredJourney fills the first n of the eight scored slots.
func scoredJourney(n int) *Journey {
	j := &Journey{}
	slots := []*string{
		&j.PNR,
		&j.FlightNumber,
		&j.DepartureCity,
		&j.ArrivalCity,
		&j.DepartureDate,
		&j.DepartureTime,
		&j.ArrivalTime,
		&j.SeatNumber,
	}
	for i := 0; i < n && i < len(slots); i++ {
		*slots[i] = "x"
	}
	return j
}

func TestConfidenceScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results []*MatchResult
		want    int
	}{
		{
			name:    "no results",
			results: nil,
			want:    0,
		},
		{
			name:    "nil results skipped",
			results: []*MatchResult{nil, nil},
			want:    0,
		},
		{
			name:    "nil journey skipped",
			results: []*MatchResult{{Journey: nil, Matched: true}},
			want:    0,
		},
		{
			name:    "full matched journey capped at 95",
			results: []*MatchResult{{Journey: scoredJourney(8), Matched: true}},
			want:    95,
		},
		{
			name:    "full unmatched journey",
			results: []*MatchResult{{Journey: scoredJourney(8)}},
			want:    50,
		},
		{
			name:    "matched five fields",
			results: []*MatchResult{{Journey: scoredJourney(5), Matched: true}},
			want:    94,
		},
		{
			name:    "matched four fields",
			results: []*MatchResult{{Journey: scoredJourney(4), Matched: true}},
			want:    75,
		},
		{
			name:    "unmatched four fields",
			results: []*MatchResult{{Journey: scoredJourney(4)}},
			want:    25,
		},
		{
			name:    "unmatched single field",
			results: []*MatchResult{{Journey: scoredJourney(1)}},
			want:    6,
		},
		{
			name:    "empty journey",
			results: []*MatchResult{{Journey: scoredJourney(0), Matched: true}},
			want:    0,
		},
		{
			name: "matched and unmatched mix",
			results: []*MatchResult{
				{Journey: scoredJourney(6), Matched: true},
				{Journey: scoredJourney(2)},
			},
			want: 63,
		},
		{
			name: "nil result among real ones",
			results: []*MatchResult{
				nil,
				{Journey: scoredJourney(8)},
			},
			want: 50,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ConfidenceScore(tt.results...))
		})
	}
}

func TestConfidenceScoreAirportFillsCitySlot(t *testing.T) {
	t.Parallel()

	j := &Journey{DepartureAirport: "DEL", ArrivalAirport: "BOM"}
	got := ConfidenceScore(&MatchResult{Journey: j})
	// Two slots at weight 0.5 out of eight: 12.5 rounds up.
	assert.Equal(t, 13, got)
}

func TestConfidenceScoreBounds(t *testing.T) {
	t.Parallel()

	for _, matched := range []bool{false, true} {
		for n := 0; n <= 8; n++ {
			name := fmt.Sprintf("matched=%v fields=%d", matched, n)
			t.Run(name, func(t *testing.T) {
				got := ConfidenceScore(&MatchResult{Journey: scoredJourney(n), Matched: matched})
				assert.GreaterOrEqual(t, got, 0)
				assert.LessOrEqual(t, got, 95)
			})
		}
	}
}
