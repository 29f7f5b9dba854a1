package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleSingleJourney(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	text := Normalize("E-Ticket\n" +
		"PNR: AB12C3\n" +
		"Mr. Rahul Verma\n" +
		"DEL - BOM 15 Mar 2026\n" +
		"6E-2341 Economy\n" +
		"Seat 2D Included\n")

	journeys := p.AssembleJourneys(text)
	require.Len(t, journeys, 1)

	j := journeys[0]
	assert.Equal(t, "AB12C3", j.PNR)
	assert.Equal(t, "6E-2341", j.FlightNumber)
	assert.Equal(t, "DEL", j.DepartureAirport)
	assert.Equal(t, "BOM", j.ArrivalAirport)
	assert.Equal(t, "2026-03-15", j.DepartureDate)
	assert.Equal(t, "2D", j.SeatNumber)
	assert.Equal(t, "Rahul Verma", j.PassengerName)
}

func TestAssembleRoundTrip(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	text := Normalize("Delhi - Mumbai, 15 Mar 2026\n" +
		"PNR: AB12C3\n" +
		"6E-2341 Adult 2D\n" +
		"Mumbai - Delhi, 20 Mar 2026\n" +
		"PNR: XY98Z7\n" +
		"AI-0863 Adult 16B\n")

	journeys := p.AssembleJourneys(text)
	require.Len(t, journeys, 2)

	first, second := journeys[0], journeys[1]

	assert.Equal(t, "AB12C3", first.PNR)
	assert.Equal(t, "6E-2341", first.FlightNumber)
	assert.Equal(t, "Delhi", first.DepartureCity)
	assert.Equal(t, "BOM", first.ArrivalAirport)
	assert.Equal(t, "2026-03-15", first.DepartureDate)
	assert.Equal(t, "2D", first.SeatNumber)

	assert.Equal(t, "XY98Z7", second.PNR)
	assert.Equal(t, "AI-0863", second.FlightNumber)
	assert.Equal(t, "BOM", second.DepartureAirport)
	assert.Equal(t, "DEL", second.ArrivalAirport)
	assert.Equal(t, "2026-03-20", second.DepartureDate)
	assert.Equal(t, "16B", second.SeatNumber)

	// Same passenger across every leg of one document.
	assert.Equal(t, first.PassengerName, second.PassengerName)
}

func TestAssembleSharedPNR(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	// One PNR covering both legs: positional assignment runs out of
	// codes, so the document's first PNR covers the second leg too.
	text := Normalize("PNR: AB12C3\n" +
		"Delhi - Mumbai, 15 Mar 2026\n" +
		"Mumbai - Delhi, 20 Mar 2026\n")

	journeys := p.AssembleJourneys(text)
	require.Len(t, journeys, 2)
	assert.Equal(t, "AB12C3", journeys[0].PNR)
	assert.Equal(t, "AB12C3", journeys[1].PNR)
}

func TestAssembleTimesFromPreviousSegment(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	// Both legs' times are printed above the second route line. The
	// first leg picks up a reversed pair and loses it to the sanity
	// check; the second finds its times in the previous segment.
	text := Normalize("PNR: AB12C3\n" +
		"Delhi - Mumbai, 15 Mar 2026\n" +
		"6E-123\n" +
		"BOM 18:00 hrs\n" +
		"DEL 20:10 hrs\n" +
		"Mumbai - Delhi, 20 Mar 2026\n" +
		"AI-456\n")

	journeys := p.AssembleJourneys(text)
	require.Len(t, journeys, 2)

	assert.Empty(t, journeys[0].DepartureTime)
	assert.Empty(t, journeys[0].ArrivalTime)

	assert.Equal(t, "18:00", journeys[1].DepartureTime)
	assert.Equal(t, "20:10", journeys[1].ArrivalTime)
}

func TestAssembleInSegmentTimes(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	text := Normalize("Delhi - Mumbai, 15 Mar 2026\n" +
		"DEL 08:30 hrs\n" +
		"BOM 10:45 hrs\n")

	journeys := p.AssembleJourneys(text)
	require.Len(t, journeys, 1)
	assert.Equal(t, "08:30", journeys[0].DepartureTime)
	assert.Equal(t, "10:45", journeys[0].ArrivalTime)
}

func TestAssembleClearsImpossibleTimes(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	text := Normalize("PNR: AB12C3\n" +
		"Delhi - Mumbai, 15 Mar 2026\n" +
		"DEL 22:00 hrs\n" +
		"BOM 06:00 hrs\n")

	journeys := p.AssembleJourneys(text)
	require.Len(t, journeys, 1)

	j := journeys[0]
	assert.Empty(t, j.DepartureTime)
	assert.Empty(t, j.ArrivalTime)

	// Everything else survives the cleared time pair.
	assert.Equal(t, "AB12C3", j.PNR)
	assert.Equal(t, "DEL", j.DepartureAirport)
	assert.Equal(t, "BOM", j.ArrivalAirport)
	assert.Equal(t, "2026-03-15", j.DepartureDate)
}

func TestAssembleFallbackWithoutRoutes(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	text := Normalize("Boarding Pass\n" +
		"PNR: AB12C3\n" +
		"Mr. Rahul Verma\n" +
		"6E-2341\n" +
		"DEL 08:30 hrs\n" +
		"BOM 10:45 hrs\n")

	journeys := p.AssembleJourneys(text)
	require.Len(t, journeys, 1)

	j := journeys[0]
	assert.Equal(t, "AB12C3", j.PNR)
	assert.Equal(t, "6E-2341", j.FlightNumber)
	assert.Equal(t, "DEL", j.DepartureAirport)
	assert.Equal(t, "BOM", j.ArrivalAirport)
	assert.Equal(t, "08:30", j.DepartureTime)
	assert.Equal(t, "10:45", j.ArrivalTime)
	assert.Equal(t, "Rahul Verma", j.PassengerName)
	assert.Empty(t, j.DepartureDate)
}

func TestAssembleFallbackDistinctAirports(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	// The same code repeated does not become both ends of the leg.
	text := "DEL terminal 1 DEL counter BOM"
	journeys := p.AssembleJourneys(text)
	require.Len(t, journeys, 1)
	assert.Equal(t, "DEL", journeys[0].DepartureAirport)
	assert.Equal(t, "BOM", journeys[0].ArrivalAirport)
}

func TestAssembleNothingFound(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	journeys := p.AssembleJourneys("completely unrelated text with no travel entities whatsoever")
	assert.Empty(t, journeys)
}

func TestClearImpossibleTimes(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		dep     string
		arr     string
		cleared bool
	}{
		{"normal order kept", "08:30", "10:45", false},
		{"equal times kept", "10:00", "10:00", false},
		{"arrival before departure cleared", "22:00", "06:00", true},
		{"missing arrival kept", "08:30", "", false},
		{"missing departure kept", "", "10:45", false},
		{"both missing kept", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			j := &Journey{DepartureTime: tc.dep, ArrivalTime: tc.arr}
			got := ClearImpossibleTimes(j)
			assert.Equal(t, tc.cleared, got)
			if tc.cleared {
				assert.Empty(t, j.DepartureTime)
				assert.Empty(t, j.ArrivalTime)
			} else {
				assert.Equal(t, tc.dep, j.DepartureTime)
				assert.Equal(t, tc.arr, j.ArrivalTime)
			}
		})
	}
}
