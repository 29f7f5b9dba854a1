package ticket

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ticketscan-service/pkg/logger"
)

// Match is a single scanner hit: the value found and the character
// offset of the match in the normalized text.
type Match struct {
	Value  string
	Offset int
}

// AirportTime pairs an airport-code occurrence with the first clock
// time printed on the same line or the line below it.
type AirportTime struct {
	Code   string
	Time   string
	Offset int
}

// Route is one "City1 - City2 <date>" phrase located in the text.
// Airport codes are filled only when the city names resolve against the
// airport table.
type Route struct {
	FromCity    string
	ToCity      string
	FromAirport string
	ToAirport   string
	Date        string
	Offset      int
}

// Extraction collects everything the scanners produced for one document.
type Extraction struct {
	PNRs          []Match
	PassengerName string
	Seats         []Match
	AirportTimes  []AirportTime
	Routes        []Route
	Flights       []Match
}

// Parser scans normalized ticket text for travel entities. All scanners
// are independent; grouping into journeys happens in AssembleJourneys.
type Parser struct {
	logger logger.Logger
}

// NewParser creates a new ticket text parser
func NewParser(logger logger.Logger) *Parser {
	return &Parser{logger: logger}
}

const monthAlternation = `Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec`

var (
	pnrPattern       = regexp.MustCompile(`(?i)PNR[:\s]*([A-Z0-9]{6})`)
	passengerPattern = regexp.MustCompile(`\b(?:Mrs|Mr|Ms|Dr)\.? ([A-Z][a-z]+(?: [A-Z][a-z]+){0,3})`)
	timePattern      = regexp.MustCompile(`\b(\d{1,2}):(\d{2})(?: ?((?i:hrs|am|pm)))?\b`)
	flightPattern    = regexp.MustCompile(`\b(6E|AI|SG|UK|G8|I5|QP)[ -]?(\d{2,4})`)
	durationPattern  = regexp.MustCompile(`^[hH] ?\d{1,2} ?[mM]`)

	routePattern = regexp.MustCompile(
		`(?:(?i:Mon|Tue|Wed|Thu|Fri|Sat|Sun)(?i:day|sday|nesday|rsday|urday)?,? )?` +
			`([A-Za-z][A-Za-z.' ]{0,28}?) ?- ?([A-Za-z][A-Za-z.' ]{0,28}?)` +
			`[,\s]+(\d{1,2})\s*((?i:` + monthAlternation + `))[A-Za-z]*\.?(?:\s+(\d{4})\b)?`)

	datePattern = regexp.MustCompile(
		`\b(\d{1,2})\s*((?i:` + monthAlternation + `))[A-Za-z]*\.?(?:\s+(\d{4})\b)?`)
)

var monthNumbers = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// Scan runs every entity scanner over the normalized text.
func (p *Parser) Scan(text string) *Extraction {
	ext := &Extraction{
		PNRs:          p.ScanPNRs(text),
		PassengerName: p.ScanPassengerName(text),
		Seats:         p.ScanSeats(text),
		AirportTimes:  p.ScanAirportTimes(text),
		Routes:        p.ScanRoutes(text),
		Flights:       p.ScanFlightNumbers(text),
	}

	p.logger.Debug("Ticket text scanned",
		"pnrCount", len(ext.PNRs),
		"seatCount", len(ext.Seats),
		"airportTimeCount", len(ext.AirportTimes),
		"routeCount", len(ext.Routes),
		"flightCount", len(ext.Flights),
		"hasPassenger", ext.PassengerName != "")

	return ext
}

// ScanPNRs returns every distinct PNR code in the text, uppercased,
// first occurrence winning per unique value. Round-trip tickets carry
// one PNR per segment, so duplicates of the same code collapse but
// distinct codes are all kept.
func (p *Parser) ScanPNRs(text string) []Match {
	var out []Match
	seen := make(map[string]bool)
	for _, m := range pnrPattern.FindAllStringSubmatchIndex(text, -1) {
		code := strings.ToUpper(text[m[2]:m[3]])
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, Match{Value: code, Offset: m[0]})
	}
	return out
}

// ScanPassengerName returns the first honorific-prefixed name in the
// document, or "". One passenger is assumed per document.
func (p *Parser) ScanPassengerName(text string) string {
	m := passengerPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

type seatPattern struct {
	name string
	re   *regexp.Regexp
}

// Ordered most to least specific. The first pattern whose matches
// survive filtering wins; later patterns are never consulted.
var seatPatterns = []seatPattern{
	{"before-included", regexp.MustCompile(`(?i)(\d{1,2}[A-F]) Included\b`)},
	{"after-adult", regexp.MustCompile(`(?i)\bAdult\b[ :,-]*(\d{1,2}[A-F])\b`)},
	{"before-code", regexp.MustCompile(`(\d{1,2}[A-F]) [A-Z0-9]{6}\b`)},
	{"standalone", regexp.MustCompile(`(?:^|[^A-Za-z])(\d{1,2}[A-F])\b`)},
}

// Carrier codes that collide with the seat shape.
var seatCarrierBlacklist = map[string]bool{"6E": true, "G8": true, "I5": true}

// ScanSeats locates seat assignments like "2D" or "14C". Tickets print
// seats in a handful of layouts, so a chain of patterns is tried in
// order of specificity.
func (p *Parser) ScanSeats(text string) []Match {
	for _, pat := range seatPatterns {
		var seats []Match
		for _, m := range pat.re.FindAllStringSubmatchIndex(text, -1) {
			start := m[2]
			value := strings.ToUpper(text[start:m[3]])
			if seatCarrierBlacklist[value] {
				continue
			}
			if isPNRTail(text, start, value) {
				continue
			}
			seats = append(seats, Match{Value: value, Offset: start})
		}
		if len(seats) > 0 {
			p.logger.Debug("Seats matched", "pattern", pat.name, "count", len(seats))
			return seats
		}
	}
	return nil
}

// isPNRTail reports whether a two-character seat candidate is really
// the last two characters of a PNR-shaped code such as "ABCD2E".
func isPNRTail(text string, offset int, value string) bool {
	if len(value) != 2 || offset < 4 {
		return false
	}
	for _, r := range text[offset-4 : offset] {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// ScanAirportTimes finds occurrences of known airport codes followed,
// on the same line or the next, by a clock time. Times convert to
// 24-hour HH:MM; am/pm/hrs suffixes are honored.
func (p *Parser) ScanAirportTimes(text string) []AirportTime {
	var out []AirportTime
	for _, loc := range airportCodePattern.FindAllStringIndex(text, -1) {
		window := text[loc[1]:lineWindowEnd(text, loc[1])]
		m := timePattern.FindStringSubmatchIndex(window)
		if m == nil {
			continue
		}
		clock := formatClock(window, m)
		if clock == "" {
			continue
		}
		out = append(out, AirportTime{
			Code:   text[loc[0]:loc[1]],
			Time:   clock,
			Offset: loc[0],
		})
	}
	return out
}

// lineWindowEnd returns the end of the line after the one containing
// position from, so a code at line end still pairs with a time printed
// on the following line.
func lineWindowEnd(text string, from int) int {
	i := strings.IndexByte(text[from:], '\n')
	if i < 0 {
		return len(text)
	}
	j := strings.IndexByte(text[from+i+1:], '\n')
	if j < 0 {
		return len(text)
	}
	return from + i + 1 + j
}

// formatClock renders a timePattern match as 24-hour HH:MM, or "" when
// the digits do not form a real clock time.
func formatClock(text string, m []int) string {
	hour, _ := strconv.Atoi(text[m[2]:m[3]])
	minute, _ := strconv.Atoi(text[m[4]:m[5]])

	suffix := ""
	if m[6] >= 0 {
		suffix = strings.ToLower(text[m[6]:m[7]])
	}
	switch suffix {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 || minute > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ScanRoutes finds "City1 - City2 <DD Mon [YYYY]>" phrases, optionally
// prefixed by a weekday name. City names resolve to airport codes when
// they (or an embedded code) appear in the airport table.
func (p *Parser) ScanRoutes(text string) []Route {
	var out []Route
	for _, m := range routePattern.FindAllStringSubmatchIndex(text, -1) {
		from := strings.TrimSpace(text[m[2]:m[3]])
		to := strings.TrimSpace(text[m[4]:m[5]])
		day, _ := strconv.Atoi(text[m[6]:m[7]])
		month := monthNumbers[strings.ToUpper(text[m[8]:m[9]])]
		year := 0
		if m[10] >= 0 {
			year, _ = strconv.Atoi(text[m[10]:m[11]])
		}
		if month == 0 || day < 1 || day > 31 {
			continue
		}
		out = append(out, Route{
			FromCity:    from,
			ToCity:      to,
			FromAirport: resolveAirportCode(from),
			ToAirport:   resolveAirportCode(to),
			Date:        isoDate(day, month, year),
			Offset:      m[0],
		})
	}
	return out
}

// isoDate renders a day/month pair as yyyy-mm-dd. Tickets often omit
// the year: the current year is assumed, rolling over to the next one
// when that would put the date more than six months in the past.
func isoDate(day int, month time.Month, year int) string {
	if year == 0 {
		now := time.Now()
		year = now.Year()
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if now.Sub(d) > 180*24*time.Hour {
			year++
		}
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// ScanFlightNumbers finds carrier-code + digits tokens like "6E-2341"
// and normalizes them to CC-NNNN form. Dense layouts glue a duration
// onto the number ("6E-2341h 10m" meaning 6E-234, 1h 10m), so a final
// digit followed by h<digits>m is given back to the duration.
func (p *Parser) ScanFlightNumbers(text string) []Match {
	var out []Match
	for _, m := range flightPattern.FindAllStringSubmatchIndex(text, -1) {
		carrier := text[m[2]:m[3]]
		digits := text[m[4]:m[5]]
		if len(digits) >= 3 && durationPattern.MatchString(text[m[5]:]) {
			digits = digits[:len(digits)-1]
		}
		out = append(out, Match{Value: carrier + "-" + digits, Offset: m[0]})
	}
	return out
}

// scanBareAirportCodes returns every airport-code occurrence in
// document order, for the no-route fallback path.
func (p *Parser) scanBareAirportCodes(text string) []Match {
	var out []Match
	for _, loc := range airportCodePattern.FindAllStringIndex(text, -1) {
		out = append(out, Match{Value: text[loc[0]:loc[1]], Offset: loc[0]})
	}
	return out
}

// scanBareTimes returns every clock time in document order, converted
// to 24-hour form, for the no-route fallback path.
func (p *Parser) scanBareTimes(text string) []string {
	var out []string
	for _, m := range timePattern.FindAllStringSubmatchIndex(text, -1) {
		if clock := formatClock(text, m); clock != "" {
			out = append(out, clock)
		}
	}
	return out
}

// scanFirstDate returns the first DD Mon [YYYY] date in the text as
// yyyy-mm-dd, or "".
func (p *Parser) scanFirstDate(text string) string {
	for _, m := range datePattern.FindAllStringSubmatchIndex(text, -1) {
		day, _ := strconv.Atoi(text[m[2]:m[3]])
		month := monthNumbers[strings.ToUpper(text[m[4]:m[5]])]
		year := 0
		if m[6] >= 0 {
			year, _ = strconv.Atoi(text[m[6]:m[7]])
		}
		if month == 0 || day < 1 || day > 31 {
			continue
		}
		return isoDate(day, month, year)
	}
	return ""
}
