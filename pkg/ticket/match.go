package ticket

import (
	"strings"

	"ticketscan-service/pkg/logger"
)

// Matcher compares reconstructed journeys against the itinerary the
// traveler declared when uploading the ticket.
type Matcher struct {
	logger logger.Logger
}

// NewMatcher creates a new itinerary matcher
func NewMatcher(logger logger.Logger) *Matcher {
	return &Matcher{logger: logger}
}

// MatchItinerary resolves which journey serves the onward leg and which
// the return leg, per the declared trip category. Either result may be
// nil when no journey could be assigned to that side.
func (m *Matcher) MatchItinerary(category TripCategory, journeys []*Journey, onward, ret *RequestedLeg) (onwardRes, returnRes *MatchResult) {
	if category == TripOneWay {
		return m.matchOneWay(journeys, onward, ret), nil
	}
	return m.matchMultiLeg(journeys, onward, ret)
}

// matchOneWay matches the single journey against whichever request was
// supplied, preferring onward. With no request at all there is nothing
// to contradict, so the journey is trivially matched.
func (m *Matcher) matchOneWay(journeys []*Journey, onward, ret *RequestedLeg) *MatchResult {
	if len(journeys) == 0 {
		return nil
	}
	j := journeys[0]
	req := onward
	if req == nil {
		req = ret
	}
	if req == nil {
		return &MatchResult{Journey: j, Matched: true}
	}
	discs := CompareJourney(j, req)
	return &MatchResult{Journey: j, Matched: len(discs) == 0, Discrepancies: discs}
}

// matchMultiLeg runs an exact pass that claims journeys with zero
// discrepancies, then an independent best-match pass per still-open
// side over the unclaimed journeys. The passes never block each other:
// one side failing to find a candidate does not shrink the other
// side's pool.
func (m *Matcher) matchMultiLeg(journeys []*Journey, onward, ret *RequestedLeg) (*MatchResult, *MatchResult) {
	claimed := make([]bool, len(journeys))
	var onRes, retRes *MatchResult

	for i, j := range journeys {
		if onward != nil && onRes == nil {
			if discs := CompareJourney(j, onward); len(discs) == 0 {
				onRes = &MatchResult{Journey: j, Matched: true}
				claimed[i] = true
				continue
			}
		}
		if ret != nil && retRes == nil {
			if discs := CompareJourney(j, ret); len(discs) == 0 {
				retRes = &MatchResult{Journey: j, Matched: true}
				claimed[i] = true
			}
		}
	}

	if onward != nil && onRes == nil {
		onRes = m.closestJourney(journeys, claimed, onward)
	}
	if ret != nil && retRes == nil {
		retRes = m.closestJourney(journeys, claimed, ret)
	}

	// Sides the traveler never declared take the remaining journeys in
	// document order.
	if onward == nil && onRes == nil {
		onRes = takeUnclaimed(journeys, claimed, retRes)
	}
	if ret == nil && retRes == nil {
		retRes = takeUnclaimed(journeys, claimed, onRes)
	}

	return onRes, retRes
}

// closestJourney picks the unclaimed journey with the fewest
// discrepancies against the request. The pick only counts as matched
// when it is a single date-only discrepancy away, or closer.
func (m *Matcher) closestJourney(journeys []*Journey, claimed []bool, req *RequestedLeg) *MatchResult {
	bestIdx := -1
	var best []Discrepancy
	for i, j := range journeys {
		if claimed[i] {
			continue
		}
		discs := CompareJourney(j, req)
		if bestIdx == -1 || len(discs) < len(best) {
			bestIdx, best = i, discs
		}
	}
	if bestIdx == -1 {
		return nil
	}
	matched := len(best) <= 1 && dateOnly(best)
	if !matched {
		m.logger.Debug("Best candidate not accepted", "discrepancies", len(best))
	}
	return &MatchResult{Journey: journeys[bestIdx], Matched: matched, Discrepancies: best}
}

func takeUnclaimed(journeys []*Journey, claimed []bool, other *MatchResult) *MatchResult {
	for i, j := range journeys {
		if claimed[i] {
			continue
		}
		if other != nil && other.Journey == j {
			continue
		}
		claimed[i] = true
		return &MatchResult{Journey: j, Matched: true}
	}
	return nil
}

func dateOnly(discs []Discrepancy) bool {
	for _, d := range discs {
		if d.Field != FieldDate {
			return false
		}
	}
	return true
}

// CompareJourney checks a journey against one requested leg, comparing
// origin, destination and date. Only fields present on both sides
// participate: absence is never a contradiction. Returns the ordered
// list of mismatches, empty meaning a clean match.
func CompareJourney(j *Journey, req *RequestedLeg) []Discrepancy {
	var discs []Discrepancy
	if j == nil || req == nil {
		return discs
	}

	from := j.DepartureCity
	if from == "" {
		from = j.DepartureAirport
	}
	if req.DepartureCity != "" && from != "" && !CitiesMatch(req.DepartureCity, from) {
		discs = append(discs, Discrepancy{Field: FieldFrom, Requested: req.DepartureCity, Extracted: from})
	}

	to := j.ArrivalCity
	if to == "" {
		to = j.ArrivalAirport
	}
	if req.ArrivalCity != "" && to != "" && !CitiesMatch(req.ArrivalCity, to) {
		discs = append(discs, Discrepancy{Field: FieldTo, Requested: req.ArrivalCity, Extracted: to})
	}

	if req.DepartureDate != "" && j.DepartureDate != "" && req.DepartureDate != j.DepartureDate {
		discs = append(discs, Discrepancy{Field: FieldDate, Requested: req.DepartureDate, Extracted: j.DepartureDate})
	}

	return discs
}

// CitiesMatch reports whether two city references plausibly name the
// same place. Either side may be a proper name, a name with the airport
// code in parentheses, or a bare code. An empty side matches anything:
// it cannot contradict what was never stated. The test is symmetric.
func CitiesMatch(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return true
	}

	na, nb := normalizeCity(a), normalizeCity(b)
	ca, cb := cityCode(a), cityCode(b)

	if na != "" && na == nb {
		return true
	}
	if ca != "" && ca == cb {
		return true
	}
	if na != "" && nb != "" && (strings.Contains(na, nb) || strings.Contains(nb, na)) {
		return true
	}
	if len(na) >= 6 && len(nb) >= 6 && levenshtein(na, nb) <= 2 {
		return true
	}
	if alias, ok := airportAliases[strings.ToLower(ca)]; ok && alias == nb {
		return true
	}
	if alias, ok := airportAliases[strings.ToLower(cb)]; ok && alias == na {
		return true
	}
	return false
}

// levenshtein computes edit distance over runes.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
