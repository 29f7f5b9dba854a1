package ticket

import "strconv"

// AssembleJourneys runs the scanners over normalized text and groups
// their output into ordered journeys. Each route phrase anchors one
// journey; entities are attached by character-offset proximity, with
// positional fallbacks when proximity finds nothing.
func (p *Parser) AssembleJourneys(text string) []*Journey {
	ext := p.Scan(text)

	if len(ext.Routes) == 0 {
		j := p.fallbackJourney(text, ext)
		if j == nil {
			p.logger.Info("No journeys found in ticket text")
			return nil
		}
		p.logger.Info("Journey assembled from fallback scan", "pnr", j.PNR, "flight", j.FlightNumber)
		return []*Journey{j}
	}

	journeys := make([]*Journey, 0, len(ext.Routes))
	for i, rt := range ext.Routes {
		start := rt.Offset
		end := len(text)
		if i+1 < len(ext.Routes) {
			end = ext.Routes[i+1].Offset
		}
		prevStart := -1
		if i > 0 {
			prevStart = ext.Routes[i-1].Offset
		}

		j := &Journey{
			DepartureCity:    rt.FromCity,
			ArrivalCity:      rt.ToCity,
			DepartureAirport: rt.FromAirport,
			ArrivalAirport:   rt.ToAirport,
			DepartureDate:    rt.Date,
			PassengerName:    ext.PassengerName,
		}

		if f := firstMatchIn(ext.Flights, start, end); f != nil {
			j.FlightNumber = f.Value
		}
		j.PNR = pnrForSegment(ext.PNRs, i, start, end)
		j.DepartureTime = timeForAirport(ext.AirportTimes, rt.FromAirport, start, end, prevStart)
		j.ArrivalTime = timeForAirport(ext.AirportTimes, rt.ToAirport, start, end, prevStart)
		if i < len(ext.Seats) {
			j.SeatNumber = ext.Seats[i].Value
		}

		if ClearImpossibleTimes(j) {
			p.logger.Warn("Cleared impossible time pair", "segment", i+1, "route", rt.FromCity+" - "+rt.ToCity)
		}
		journeys = append(journeys, j)
	}

	p.logger.Info("Journeys assembled", "count", len(journeys))
	return journeys
}

// fallbackJourney builds a single journey for documents where no route
// phrase was found, taking the first occurrence of each entity. Returns
// nil when not a single field could be extracted.
func (p *Parser) fallbackJourney(text string, ext *Extraction) *Journey {
	j := &Journey{PassengerName: ext.PassengerName}

	if len(ext.PNRs) > 0 {
		j.PNR = ext.PNRs[0].Value
	}
	if len(ext.Flights) > 0 {
		j.FlightNumber = ext.Flights[0].Value
	}

	for _, c := range p.scanBareAirportCodes(text) {
		if j.DepartureAirport == "" {
			j.DepartureAirport = c.Value
		} else if c.Value != j.DepartureAirport {
			j.ArrivalAirport = c.Value
			break
		}
	}

	times := p.scanBareTimes(text)
	if len(times) > 0 {
		j.DepartureTime = times[0]
	}
	if len(times) > 1 {
		j.ArrivalTime = times[1]
	}

	j.DepartureDate = p.scanFirstDate(text)

	ClearImpossibleTimes(j)
	if *j == (Journey{}) {
		return nil
	}
	return j
}

// firstMatchIn returns the first match whose offset lies in [start, end).
func firstMatchIn(matches []Match, start, end int) *Match {
	for i := range matches {
		if matches[i].Offset >= start && matches[i].Offset < end {
			return &matches[i]
		}
	}
	return nil
}

// pnrForSegment picks the PNR for segment i: first PNR inside the
// segment, else the i-th PNR positionally, else the document's first.
func pnrForSegment(pnrs []Match, i, start, end int) string {
	for _, m := range pnrs {
		if m.Offset >= start && m.Offset < end {
			return m.Value
		}
	}
	if i < len(pnrs) {
		return pnrs[i].Value
	}
	if len(pnrs) > 0 {
		return pnrs[0].Value
	}
	return ""
}

// timeForAirport finds the time paired with an airport code inside the
// segment, falling back to the previous segment's range. Tickets
// sometimes print both legs' times above the second route line.
func timeForAirport(times []AirportTime, code string, start, end, prevStart int) string {
	if code == "" {
		return ""
	}
	for _, at := range times {
		if at.Code == code && at.Offset >= start && at.Offset < end {
			return at.Time
		}
	}
	if prevStart >= 0 {
		for _, at := range times {
			if at.Code == code && at.Offset >= prevStart && at.Offset < start {
				return at.Time
			}
		}
	}
	return ""
}

// ClearImpossibleTimes clears both times on a journey whose arrival
// clock reads earlier than its departure clock. Without a date-rollover
// marker such a pair cannot be told apart from a scanner mispairing, so
// neither time is reported. Returns true when the pair was cleared.
func ClearImpossibleTimes(j *Journey) bool {
	dep, okDep := clockMinutes(j.DepartureTime)
	arr, okArr := clockMinutes(j.ArrivalTime)
	if !okDep || !okArr {
		return false
	}
	if arr < dep {
		j.DepartureTime = ""
		j.ArrivalTime = ""
		return true
	}
	return false
}

func clockMinutes(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	h, err1 := strconv.Atoi(s[:2])
	m, err2 := strconv.Atoi(s[3:])
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return h*60 + m, true
}
