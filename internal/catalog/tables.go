package catalog

// Static reference tables the validators consult. All keys and values are
// stored lower-cased; callers are expected to normalize answers the same way.
// The tables are the source of truth for correctness: a country missing from
// a table simply makes the related answers incorrect, it is not an error.

// starFlagCountries lists countries whose flag carries at least one star.
var starFlagCountries = map[string]struct{}{
	"ghana":        {},
	"morocco":      {},
	"senegal":      {},
	"cameroon":     {},
	"ethiopia":     {},
	"somalia":      {},
	"togo":         {},
	"burkina faso": {},
	"liberia":      {},
	"mauritania":   {},
	"djibouti":     {},
	"mozambique":   {},
	"angola":       {},
	"tunisia":      {},
}

// mostPopulousCities maps a country to its most populous city.
var mostPopulousCities = map[string]string{
	"ghana":        "accra",
	"nigeria":      "lagos",
	"kenya":        "nairobi",
	"senegal":      "dakar",
	"morocco":      "casablanca",
	"ethiopia":     "addis ababa",
	"tanzania":     "dar es salaam",
	"egypt":        "cairo",
	"south africa": "johannesburg",
	"cameroon":     "douala",
	"ivory coast":  "abidjan",
	"togo":         "lome",
	"burkina faso": "ouagadougou",
	"somalia":      "mogadishu",
	"liberia":      "monrovia",
	"mauritania":   "nouakchott",
	"angola":       "luanda",
	"tunisia":      "tunis",
	"mozambique":   "maputo",
	"algeria":      "algiers",
	"uganda":       "kampala",
	"zambia":       "lusaka",
	"zimbabwe":     "harare",
	"mali":         "bamako",
	"niger":        "niamey",
	"benin":        "cotonou",
	"rwanda":       "kigali",
	"malawi":       "lilongwe",
	"djibouti":     "djibouti",
}

// landBorders maps a country to its land neighbors.
var landBorders = map[string][]string{
	"ghana":        {"togo", "burkina faso", "ivory coast"},
	"togo":         {"ghana", "benin", "burkina faso"},
	"benin":        {"togo", "nigeria", "burkina faso", "niger"},
	"nigeria":      {"benin", "niger", "chad", "cameroon"},
	"senegal":      {"mauritania", "mali", "guinea", "guinea-bissau", "gambia"},
	"morocco":      {"algeria"},
	"ethiopia":     {"eritrea", "djibouti", "somalia", "kenya", "south sudan", "sudan"},
	"kenya":        {"ethiopia", "somalia", "south sudan", "uganda", "tanzania"},
	"cameroon":     {"nigeria", "chad", "central african republic", "congo", "gabon", "equatorial guinea"},
	"burkina faso": {"mali", "niger", "benin", "togo", "ghana", "ivory coast"},
	"somalia":      {"djibouti", "ethiopia", "kenya"},
	"liberia":      {"sierra leone", "guinea", "ivory coast"},
	"mauritania":   {"algeria", "mali", "senegal"},
	"ivory coast":  {"liberia", "guinea", "mali", "burkina faso", "ghana"},
	"tanzania":     {"kenya", "uganda", "rwanda", "burundi", "zambia", "malawi", "mozambique"},
	"malawi":       {"tanzania", "mozambique", "zambia"},
	"mozambique":   {"tanzania", "malawi", "zambia", "zimbabwe", "south africa", "eswatini"},
	"angola":       {"namibia", "zambia", "democratic republic of congo"},
	"tunisia":      {"algeria", "libya"},
	"egypt":        {"libya", "sudan"},
	"south africa": {"namibia", "botswana", "zimbabwe", "mozambique", "eswatini", "lesotho"},
	"djibouti":     {"eritrea", "ethiopia", "somalia"},
}

// currencies maps a country to the common name of its currency.
var currencies = map[string]string{
	"ghana":        "cedi",
	"nigeria":      "naira",
	"togo":         "cfa franc",
	"burkina faso": "cfa franc",
	"ivory coast":  "cfa franc",
	"benin":        "cfa franc",
	"niger":        "cfa franc",
	"senegal":      "cfa franc",
	"mali":         "cfa franc",
	"kenya":        "shilling",
	"tanzania":     "shilling",
	"uganda":       "shilling",
	"somalia":      "shilling",
	"ethiopia":     "birr",
	"morocco":      "dirham",
	"south africa": "rand",
	"egypt":        "pound",
	"tunisia":      "dinar",
	"algeria":      "dinar",
	"zambia":       "kwacha",
	"malawi":       "kwacha",
	"mozambique":   "metical",
	"mauritania":   "ouguiya",
	"liberia":      "dollar",
	"djibouti":     "franc",
	"angola":       "kwanza",
	"gambia":       "dalasi",
}

// regionCycle is the fixed ordering the second-city riddle walks through.
// The riddle advances eight positions from the region of the player's first
// answer, which on a five-entry cycle lands three regions ahead.
var regionCycle = []string{"west", "north", "east", "central", "southern"}

// countryRegions assigns each country to one entry of regionCycle.
var countryRegions = map[string]string{
	"ghana":        "west",
	"nigeria":      "west",
	"togo":         "west",
	"benin":        "west",
	"burkina faso": "west",
	"ivory coast":  "west",
	"senegal":      "west",
	"liberia":      "west",
	"mali":         "west",
	"niger":        "west",
	"mauritania":   "west",
	"gambia":       "west",
	"morocco":      "north",
	"algeria":      "north",
	"tunisia":      "north",
	"egypt":        "north",
	"libya":        "north",
	"kenya":        "east",
	"ethiopia":     "east",
	"tanzania":     "east",
	"somalia":      "east",
	"uganda":       "east",
	"djibouti":     "east",
	"rwanda":       "east",
	"cameroon":     "central",
	"chad":         "central",
	"gabon":        "central",
	"congo":        "central",
	"democratic republic of congo": "central",
	"central african republic":     "central",
	"south africa": "southern",
	"mozambique":   "southern",
	"zimbabwe":     "southern",
	"zambia":       "southern",
	"malawi":       "southern",
	"botswana":     "southern",
	"namibia":      "southern",
	"angola":       "southern",
	"lesotho":      "southern",
	"eswatini":     "southern",
}

// regionSecondCities maps each region to its agreed "second city" answer.
var regionSecondCities = map[string]string{
	"west":     "kumasi",
	"north":    "alexandria",
	"east":     "mombasa",
	"central":  "pointe-noire",
	"southern": "cape town",
}

// independenceYears maps a country to its year of independence.
var independenceYears = map[string]int{
	"ghana":        1957,
	"nigeria":      1960,
	"togo":         1960,
	"benin":        1960,
	"burkina faso": 1960,
	"ivory coast":  1960,
	"niger":        1960,
	"mali":         1960,
	"senegal":      1960,
	"kenya":        1963,
	"tanzania":     1961,
	"uganda":       1962,
	"malawi":       1964,
	"zambia":       1964,
	"mozambique":   1975,
	"zimbabwe":     1980,
	"botswana":     1966,
	"namibia":      1990,
	"south africa": 1961,
	"angola":       1975,
	"algeria":      1962,
	"tunisia":      1956,
	"morocco":      1956,
	"egypt":        1922,
	"libya":        1951,
	"somalia":      1960,
	"djibouti":     1977,
	"cameroon":     1960,
	"chad":         1960,
	"gambia":       1965,
	"guinea":       1958,
	"mauritania":   1960,
	"eswatini":     1968,
	"lesotho":      1966,
}

// threeBorderCountries is the fixed set the independence riddle starts from:
// countries with exactly three land neighbors in landBorders.
var threeBorderCountries = []string{"ghana", "togo", "malawi", "somalia"}

// HasStarFlag reports whether the country's flag carries a star.
func HasStarFlag(country string) bool {
	_, ok := starFlagCountries[country]
	return ok
}

// MostPopulousCity returns the country's most populous city, if known.
func MostPopulousCity(country string) (string, bool) {
	city, ok := mostPopulousCities[country]
	return city, ok
}

// Neighbors returns the country's land neighbors, if known.
func Neighbors(country string) ([]string, bool) {
	n, ok := landBorders[country]
	return n, ok
}

// Currency returns the country's currency name, if known.
func Currency(country string) (string, bool) {
	c, ok := currencies[country]
	return c, ok
}

// SecondCityAfterShift resolves the second-city riddle for a starting
// country: take the country's region, advance shift positions through the
// region cycle, and return that region's second city.
func SecondCityAfterShift(country string, shift int) (string, bool) {
	region, ok := countryRegions[country]
	if !ok {
		return "", false
	}
	idx := -1
	for i, r := range regionCycle {
		if r == region {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false
	}
	target := regionCycle[(idx+shift)%len(regionCycle)]
	city, ok := regionSecondCities[target]
	return city, ok
}

// IndependenceYearSet returns the union of independence years of every
// neighbor of every three-border country. Neighbors without a recorded
// year are skipped.
func IndependenceYearSet() map[int]struct{} {
	years := make(map[int]struct{})
	for _, country := range threeBorderCountries {
		for _, neighbor := range landBorders[country] {
			if y, ok := independenceYears[neighbor]; ok {
				years[y] = struct{}{}
			}
		}
	}
	return years
}
