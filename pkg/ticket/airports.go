package ticket

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// airportCities maps the airport codes this service recognizes to the
// city names printed on tickets in its markets. The scanners only ever
// treat a three-letter token as an airport when it appears here.
var airportCities = map[string]string{
	"DEL": "Delhi", "BOM": "Mumbai", "BLR": "Bangalore", "MAA": "Chennai",
	"CCU": "Kolkata", "HYD": "Hyderabad", "AMD": "Ahmedabad", "GOI": "Goa",
	"PNQ": "Pune", "JAI": "Jaipur", "LKO": "Lucknow", "IXC": "Chandigarh",
	"COK": "Kochi", "TRV": "Thiruvananthapuram", "GAU": "Guwahati", "PAT": "Patna",
	"BBI": "Bhubaneswar", "IXB": "Bagdogra", "VNS": "Varanasi", "SXR": "Srinagar",
	"IXJ": "Jammu", "ATQ": "Amritsar", "IXL": "Leh", "UDR": "Udaipur",
	"JDH": "Jodhpur", "IDR": "Indore", "BHO": "Bhopal", "NAG": "Nagpur",
	"RPR": "Raipur", "VTZ": "Visakhapatnam", "VGA": "Vijayawada", "IXM": "Madurai",
	"TRZ": "Tiruchirappalli", "CJB": "Coimbatore", "CCJ": "Kozhikode", "IXE": "Mangaluru",
	"HBX": "Hubballi", "STV": "Surat", "BDQ": "Vadodara", "RAJ": "Rajkot",
	"IXU": "Aurangabad", "DED": "Dehradun", "GWL": "Gwalior", "JLR": "Jabalpur",
	"IXR": "Ranchi", "GAY": "Gaya", "DBR": "Darbhanga", "IXS": "Silchar",
	"DIB": "Dibrugarh", "JRH": "Jorhat", "IMF": "Imphal", "AJL": "Aizawl",
	"DMU": "Dimapur", "SHL": "Shillong", "IXA": "Agartala", "IXZ": "Port Blair",
	"KNU": "Kanpur", "BHU": "Bhavnagar", "JGA": "Jamnagar", "BHJ": "Bhuj",
	"DXB": "Dubai", "AUH": "Abu Dhabi", "SHJ": "Sharjah", "DOH": "Doha",
	"SIN": "Singapore", "KUL": "Kuala Lumpur", "BKK": "Bangkok", "CMB": "Colombo",
	"KTM": "Kathmandu", "DAC": "Dhaka", "LHR": "London", "JFK": "New York",
	"HKG": "Hong Kong", "CDG": "Paris", "FRA": "Frankfurt",
}

// airportAliases maps airport codes to historical or colloquial city
// names still common on tickets and in traveler-typed itineraries.
var airportAliases = map[string]string{
	"bom": "bombay",
	"del": "new delhi",
	"maa": "madras",
	"ccu": "calcutta",
	"blr": "bengaluru",
	"cok": "cochin",
	"trv": "trivandrum",
	"ccj": "calicut",
	"ixe": "mangalore",
	"vtz": "vizag",
	"trz": "trichy",
	"pnq": "poona",
	"bdq": "baroda",
	"goi": "panaji",
	"gau": "gauhati",
	"vns": "benares",
	"hbx": "hubli",
	"ixu": "sambhaji nagar",
	"ixb": "siliguri",
	"knu": "cawnpore",
	"hyd": "secunderabad",
	"dac": "dacca",
	"ktm": "katmandu",
	"lhr": "heathrow",
	"jfk": "nyc",
}

var (
	// Built once from the airport table at startup.
	airportCodePattern *regexp.Regexp
	cityCodes          map[string]string
	cityNames          []string

	parenCodePattern = regexp.MustCompile(`\(([A-Za-z]{3})\)`)
)

func init() {
	codes := make([]string, 0, len(airportCities))
	cityCodes = make(map[string]string, len(airportCities))
	for code, city := range airportCities {
		codes = append(codes, code)
		cityCodes[strings.ToLower(city)] = code
	}
	sort.Strings(codes)
	airportCodePattern = regexp.MustCompile(`\b(` + strings.Join(codes, "|") + `)\b`)

	cityNames = make([]string, 0, len(cityCodes))
	for city := range cityCodes {
		cityNames = append(cityNames, city)
	}
	sort.Strings(cityNames)
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

// normalizeCity reduces a city phrase to a comparable form: parenthetical
// airport codes stripped, diacritics folded, lowercased, spaces collapsed.
func normalizeCity(s string) string {
	s = parenCodePattern.ReplaceAllString(s, " ")
	s = foldDiacritics(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// embeddedCode returns the airport code carried inside a city phrase,
// either parenthesised ("Mumbai (BOM)") or the phrase itself when it is
// a bare three-letter token. Empty when neither form is present.
func embeddedCode(s string) string {
	if m := parenCodePattern.FindStringSubmatch(s); m != nil {
		return strings.ToUpper(m[1])
	}
	t := strings.TrimSpace(s)
	if len(t) == 3 && isLetters(t) {
		return strings.ToUpper(t)
	}
	return ""
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// cityCode returns the airport code a city reference stands for: an
// embedded code when the table knows it, else the table code for the
// normalized city name. Empty when the reference resolves to nothing.
func cityCode(s string) string {
	if code := embeddedCode(s); code != "" {
		if _, ok := airportCities[code]; ok {
			return code
		}
	}
	return cityCodes[normalizeCity(s)]
}

// resolveAirportCode maps a scanned city phrase to a code from the
// airport table, by embedded code, exact city name, or edit distance
// up to 2 for names of five or more characters. Empty when nothing
// resolves; an unresolved city is still usable for itinerary matching.
func resolveAirportCode(name string) string {
	if code := embeddedCode(name); code != "" {
		if _, ok := airportCities[code]; ok {
			return code
		}
	}
	n := normalizeCity(name)
	if n == "" {
		return ""
	}
	if code, ok := cityCodes[n]; ok {
		return code
	}
	if len([]rune(n)) < 5 {
		return ""
	}
	best := ""
	bestDist := 3
	for _, city := range cityNames {
		if d := levenshtein(n, city); d < bestDist {
			best, bestDist = cityCodes[city], d
		}
	}
	return best
}
