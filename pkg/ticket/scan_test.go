package ticket

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketscan-service/pkg/logger"
)

func newTestParser() *Parser {
	return NewParser(logger.NewNopLogger())
}

func TestScanPNRs(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "colon separated",
			text:     "PNR: AB12C3 confirmed",
			expected: []string{"AB12C3"},
		},
		{
			name:     "no separator",
			text:     "PNRAB12C3",
			expected: []string{"AB12C3"},
		},
		{
			name:     "lowercase uppercased",
			text:     "pnr: xy98z7",
			expected: []string{"XY98Z7"},
		},
		{
			name:     "duplicates collapse",
			text:     "PNR: AB12C3 some text PNR: AB12C3",
			expected: []string{"AB12C3"},
		},
		{
			name:     "distinct codes kept in order",
			text:     "PNR: AB12C3 onward\nPNR: XY98Z7 return",
			expected: []string{"AB12C3", "XY98Z7"},
		},
		{
			name:     "nothing",
			text:     "no booking reference here",
			expected: nil,
		},
		{
			name:     "first six of a longer run",
			text:     "PNR: AB12C3XY",
			expected: []string{"AB12C3"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, m := range p.ScanPNRs(tc.text) {
				got = append(got, m.Value)
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestScanPNRsRecordOffsets(t *testing.T) {
	t.Parallel()
	p := newTestParser()
	text := "header\nPNR: AB12C3"
	matches := p.ScanPNRs(text)
	require.Len(t, matches, 1)
	assert.Equal(t, strings.Index(text, "PNR"), matches[0].Offset)
}

func TestScanPNRsEmbeddedAnywhere(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	// The code must surface no matter what surrounds it.
	surroundings := []struct{ before, after string }{
		{"", ""},
		{"Booking ref ", " confirmed"},
		{"x", "y"},
		{"fare\n", "\ntotal"},
		{"(", ")"},
	}
	for _, s := range surroundings {
		text := s.before + "PNR: QW3RT9" + s.after
		matches := p.ScanPNRs(text)
		require.Len(t, matches, 1, "text %q", text)
		assert.Equal(t, "QW3RT9", matches[0].Value, "text %q", text)
	}
}

func TestScanPassengerName(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{"with period", "Passenger Mr. Rahul Verma", "Rahul Verma"},
		{"without period", "Mrs Priya Sharma window seat", "Priya Sharma"},
		{"dr honorific", "Dr. Anil Kumar", "Anil Kumar"},
		{"first match wins", "Ms. Asha Rao and Mr. Vijay Rao", "Asha Rao"},
		{"caps at four words", "Mr. Anil Kumar Singh Rathore Extra", "Anil Kumar Singh Rathore"},
		{"no honorific", "Rahul Verma", ""},
		{"honorific without name", "Mr. 12345", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, p.ScanPassengerName(tc.text))
		})
	}
}

func TestScanSeats(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "before included",
			text:     "Seat 2D Included in fare",
			expected: []string{"2D"},
		},
		{
			name:     "after adult",
			text:     "Passenger Adult 14C aisle",
			expected: []string{"14C"},
		},
		{
			name:     "before booking code",
			text:     "2D AB12C3",
			expected: []string{"2D"},
		},
		{
			name:     "standalone token",
			text:     "window 12A preferred",
			expected: []string{"12A"},
		},
		{
			name:     "standalone preceded by letter rejected",
			text:     "terminal T2D gate",
			expected: nil,
		},
		{
			name:     "carrier code is never a seat",
			text:     "flight 6E departs",
			expected: nil,
		},
		{
			name:     "pnr tail filtered",
			text:     "code WXYZ2E Included",
			expected: nil,
		},
		{
			name:     "specific pattern shadows generic",
			text:     "9F row free 2D Included",
			expected: []string{"2D"},
		},
		{
			name:     "one seat per leg",
			text:     "Adult 2D onward Adult 16B return",
			expected: []string{"2D", "16B"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, m := range p.ScanSeats(tc.text) {
				got = append(got, m.Value)
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestScanAirportTimes(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	testCases := []struct {
		name     string
		text     string
		code     string
		expected string
	}{
		{"hrs suffix", "CCU 10:50 hrs", "CCU", "10:50"},
		{"pm converts", "DEL 2:15 pm", "DEL", "14:15"},
		{"midnight am", "DEL 12:00 am", "DEL", "00:00"},
		{"noon pm stays", "BOM 12:30 pm", "BOM", "12:30"},
		{"plain 24 hour", "BOM 21:05", "BOM", "21:05"},
		{"single digit hour padded", "MAA 9:05 am", "MAA", "09:05"},
		{"time on next line", "DEL\n08:30 hrs", "DEL", "08:30"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.ScanAirportTimes(tc.text)
			require.Len(t, got, 1)
			assert.Equal(t, tc.code, got[0].Code)
			assert.Equal(t, tc.expected, got[0].Time)
		})
	}
}

func TestScanAirportTimesEdges(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	// Unknown codes never pair.
	assert.Empty(t, p.ScanAirportTimes("ZZZ 10:00"))

	// A time two lines below the code is out of the pairing window.
	assert.Empty(t, p.ScanAirportTimes("DEL\nIndira Gandhi Intl\n08:30 hrs"))

	// Nonsense clock readings are dropped.
	assert.Empty(t, p.ScanAirportTimes("DEL 29:99"))

	// Repeated codes pair independently, in document order.
	got := p.ScanAirportTimes("DEL 08:30 hrs\nBOM 10:45 hrs\nBOM 18:00 hrs\nDEL 20:10 hrs")
	require.Len(t, got, 4)
	assert.Equal(t, "08:30", got[0].Time)
	assert.Equal(t, "20:10", got[3].Time)
}

func TestScanRoutes(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	testCases := []struct {
		name        string
		text        string
		fromCity    string
		toCity      string
		fromAirport string
		toAirport   string
		date        string
	}{
		{
			name:        "city names with year",
			text:        "Delhi - Mumbai, 15 Mar 2026",
			fromCity:    "Delhi",
			toCity:      "Mumbai",
			fromAirport: "DEL",
			toAirport:   "BOM",
			date:        "2026-03-15",
		},
		{
			name:        "bare airport codes",
			text:        "DEL - BOM 15 Mar 2026",
			fromCity:    "DEL",
			toCity:      "BOM",
			fromAirport: "DEL",
			toAirport:   "BOM",
			date:        "2026-03-15",
		},
		{
			name:        "weekday prefix",
			text:        "Friday, Delhi - Mumbai 15 Mar 2026",
			fromCity:    "Delhi",
			toCity:      "Mumbai",
			fromAirport: "DEL",
			toAirport:   "BOM",
			date:        "2026-03-15",
		},
		{
			name:        "multi word cities stay unresolved",
			text:        "New Delhi - Navi Mumbai 15 Mar 2026",
			fromCity:    "New Delhi",
			toCity:      "Navi Mumbai",
			fromAirport: "",
			toAirport:   "",
			date:        "2026-03-15",
		},
		{
			name:        "misspelling within edit distance",
			text:        "Bangalor - Chenai 01 Apr 2026",
			fromCity:    "Bangalor",
			toCity:      "Chenai",
			fromAirport: "BLR",
			toAirport:   "MAA",
			date:        "2026-04-01",
		},
		{
			name:        "uppercase month",
			text:        "Delhi - Mumbai 15 MAR 2026",
			fromCity:    "Delhi",
			toCity:      "Mumbai",
			fromAirport: "DEL",
			toAirport:   "BOM",
			date:        "2026-03-15",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			routes := p.ScanRoutes(tc.text)
			require.Len(t, routes, 1)
			rt := routes[0]
			assert.Equal(t, tc.fromCity, rt.FromCity)
			assert.Equal(t, tc.toCity, rt.ToCity)
			assert.Equal(t, tc.fromAirport, rt.FromAirport)
			assert.Equal(t, tc.toAirport, rt.ToAirport)
			assert.Equal(t, tc.date, rt.Date)
		})
	}
}

func TestScanRoutesYearInference(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	routes := p.ScanRoutes("Delhi - Mumbai 15 Mar")
	require.Len(t, routes, 1)

	year := time.Now().Year()
	valid := []string{
		fmt.Sprintf("%d-03-15", year),
		fmt.Sprintf("%d-03-15", year+1),
	}
	assert.Contains(t, valid, routes[0].Date)
}

func TestScanRoutesMultiple(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	text := "Delhi - Mumbai, 15 Mar 2026\nfare rules apply\nMumbai - Delhi, 20 Mar 2026"
	routes := p.ScanRoutes(text)
	require.Len(t, routes, 2)
	assert.Equal(t, "2026-03-15", routes[0].Date)
	assert.Equal(t, "2026-03-20", routes[1].Date)
	assert.Less(t, routes[0].Offset, routes[1].Offset)
}

func TestScanFlightNumbers(t *testing.T) {
	t.Parallel()
	p := newTestParser()

	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{"hyphenated", "6E-2341 Economy", []string{"6E-2341"}},
		{"space separated", "AI 0863", []string{"AI-0863"}},
		{"glued", "UK810", []string{"UK-810"}},
		{"duration stripped", "6E-2341h 10m nonstop", []string{"6E-234"}},
		{"short number keeps glued duration digit", "SG-42h 30m", []string{"SG-42"}},
		{"separate duration untouched", "6E-234 1h 10m", []string{"6E-234"}},
		{"unknown carrier", "ZZ-1234", nil},
		{"lowercase carrier rejected", "ai 123", nil},
		{"two flights", "6E-2341 then AI-0863", []string{"6E-2341", "AI-0863"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, m := range p.ScanFlightNumbers(tc.text) {
				got = append(got, m.Value)
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}
