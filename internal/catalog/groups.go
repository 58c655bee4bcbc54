package catalog

import "geotrivia-service/internal/domain"

// DefaultGroupID is the group new sessions fall back to when none is named.
const DefaultGroupID = "african-explorer"

// BuiltinGroups returns the built-in question groups in display order. The
// returned slice is freshly allocated on each call; the group contents are
// shared and must be treated as immutable.
func BuiltinGroups() []domain.QuestionGroup {
	return []domain.QuestionGroup{africanExplorer, coastalSprint}
}

var africanExplorer = domain.QuestionGroup{
	ID:              "african-explorer",
	Title:           "African Explorer",
	Description:     "Ten questions across the continent. Three wrong answers and the run is over.",
	MaxWrong:        3,
	RequiredCorrect: 10,
	Reward: &domain.Reward{
		Title:       "Continental Champion",
		Description: "10% off your next order",
		Level:       "gold",
	},
	Questions: []domain.Question{
		{
			ID:          1,
			Emoji:       "⭐",
			Title:       "Name an African country with a star on its flag",
			Description: "Plenty of flags carry one. Any of them counts.",
			Placeholder: "Country name",
			Validator:   domain.ValidatorStarFlag,
		},
		{
			ID:          2,
			Emoji:       "🏙️",
			Title:       "What is the most populous city in {{answer:1}}?",
			Description: "The biggest city of the country you just named.",
			Placeholder: "City name",
			Validator:   domain.ValidatorMostPopulousCity,
		},
		{
			ID:          3,
			Dynamic:     true,
			Emoji:       "🍲",
			Title:       "Which country does {{subject}} come from?",
			Description: "A beloved dish. More than one answer may be accepted.",
			Placeholder: "Country name",
			Validator:   domain.ValidatorDishOrigin,
		},
		{
			ID:          4,
			Emoji:       "🗺️",
			Title:       "Name a country that shares a border with {{answer:1}}",
			Description: "Any land neighbor will do.",
			Placeholder: "Country name",
			Validator:   domain.ValidatorNeighborCountry,
		},
		{
			ID:          5,
			Dynamic:     true,
			Emoji:       "🗣️",
			Title:       "In which country is {{subject}} primarily spoken?",
			Description: "One country is the accepted answer.",
			Placeholder: "Country name",
			Validator:   domain.ValidatorLanguageOrigin,
		},
		{
			ID:          6,
			Dynamic:     true,
			Emoji:       "🎵",
			Title:       "Which country is {{subject}} from?",
			Description: "Name the artist's home country.",
			Placeholder: "Country name",
			Validator:   domain.ValidatorArtistOrigin,
		},
		{
			ID:          7,
			Emoji:       "💰",
			Title:       "What currency is used in {{answer:4}}?",
			Description: "The money of the neighbor you named earlier.",
			Placeholder: "Currency name",
			Validator:   domain.ValidatorCurrency,
		},
		{
			ID:          8,
			Dynamic:     true,
			Emoji:       "🔀",
			Title:       "Unscramble this city: {{subject}}",
			Description: "The letters of a well-known African city, shuffled.",
			Placeholder: "City name",
			Validator:   domain.ValidatorUnscrambledCity,
		},
		{
			ID:          9,
			Emoji:       "🧭",
			Title:       "Start in the region of {{answer:1}}, travel eight regions onward around the continent. What is the second most populous city where you land?",
			Description: "The journey loops west, north, east, central, southern and back again.",
			Placeholder: "City name",
			Validator:   domain.ValidatorSecondCityRiddle,
		},
		{
			ID:          10,
			Emoji:       "⏳",
			Title:       "A time traveler visits every neighbor of every African country with exactly three land borders. Name a year one of those neighbors gained independence",
			Description: "Any qualifying year counts.",
			Placeholder: "Year",
			Validator:   domain.ValidatorIndependenceYear,
		},
	},
}

var coastalSprint = domain.QuestionGroup{
	ID:              "coastal-sprint",
	Title:           "Coastal Sprint",
	Description:     "A quick three-question warm-up. Two wrong answers end the run.",
	MaxWrong:        2,
	RequiredCorrect: 3,
	Reward: &domain.Reward{
		Title:       "Sprinter",
		Description: "Free shipping on your next order",
		Level:       "silver",
	},
	Questions: []domain.Question{
		{
			ID:          1,
			Emoji:       "⭐",
			Title:       "Name an African country with a star on its flag",
			Description: "Same rule as always: any star-flag country counts.",
			Placeholder: "Country name",
			Validator:   domain.ValidatorStarFlag,
		},
		{
			ID:          2,
			Emoji:       "🏙️",
			Title:       "What is the most populous city in {{answer:1}}?",
			Description: "The biggest city of the country you just named.",
			Placeholder: "City name",
			Validator:   domain.ValidatorMostPopulousCity,
		},
		{
			ID:          3,
			Dynamic:     true,
			Emoji:       "🔀",
			Title:       "Unscramble this city: {{subject}}",
			Description: "Shuffled letters of a well-known African city.",
			Placeholder: "City name",
			Validator:   domain.ValidatorUnscrambledCity,
		},
	},
}
