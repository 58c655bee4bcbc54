// Package validate decides whether a submitted answer is correct for a
// given question. Every validator is a pure function over the catalog's
// reference tables or the question's dynamic payload. The engine fails
// closed: unknown validator kinds and missing prerequisites resolve to
// incorrect, never to an error.
package validate

import (
	"log"
	"strconv"
	"strings"

	"geotrivia-service/internal/catalog"
	"geotrivia-service/internal/domain"
)

// regionShift is how far the second-city riddle advances around the
// five-entry region cycle.
const regionShift = 8

// Context carries everything a validator may consult for one submission.
type Context struct {
	Answer          string
	QuestionID      int
	PreviousAnswers []string
	GroupID         string
	ScrambledWord   string
	DynamicData     *domain.DynamicData
}

// Validate checks the answer against the named validator. The answer and all
// reference values are compared trimmed and lower-cased.
func Validate(ctx Context, kind domain.ValidatorKind) bool {
	answer := normalize(ctx.Answer)
	if answer == "" {
		return false
	}

	switch kind {
	case domain.ValidatorStarFlag:
		return catalog.HasStarFlag(answer)
	case domain.ValidatorMostPopulousCity:
		return checkMostPopulousCity(ctx, answer)
	case domain.ValidatorDishOrigin:
		return checkCountryMatch(ctx.DynamicData, answer)
	case domain.ValidatorNeighborCountry:
		return checkNeighbor(ctx, answer)
	case domain.ValidatorLanguageOrigin:
		return checkSingleCountry(ctx.DynamicData, answer)
	case domain.ValidatorArtistOrigin:
		return checkSingleCountry(ctx.DynamicData, answer)
	case domain.ValidatorCurrency:
		return checkCurrency(ctx, answer)
	case domain.ValidatorUnscrambledCity:
		return checkUnscrambled(ctx.DynamicData, answer)
	case domain.ValidatorSecondCityRiddle:
		return checkSecondCity(ctx, answer)
	case domain.ValidatorIndependenceYear:
		return checkIndependenceYear(answer)
	default:
		log.Printf("validate: unknown validator kind %q for question %d, treating answer as incorrect", kind, ctx.QuestionID)
		return false
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func previousAnswer(ctx Context, index int) (string, bool) {
	if index < 0 || index >= len(ctx.PreviousAnswers) {
		return "", false
	}
	answer := normalize(ctx.PreviousAnswers[index])
	if answer == "" {
		return "", false
	}
	return answer, true
}

// checkMostPopulousCity compares against the biggest city of the country the
// player named in their first answer.
func checkMostPopulousCity(ctx Context, answer string) bool {
	country, ok := previousAnswer(ctx, 0)
	if !ok {
		return false
	}
	city, ok := catalog.MostPopulousCity(country)
	return ok && answer == city
}

func checkNeighbor(ctx Context, answer string) bool {
	country, ok := previousAnswer(ctx, 0)
	if !ok {
		return false
	}
	neighbors, ok := catalog.Neighbors(country)
	if !ok {
		return false
	}
	for _, n := range neighbors {
		if answer == n {
			return true
		}
	}
	return false
}

// checkCountryMatch accepts any of the payload's candidate countries.
func checkCountryMatch(data *domain.DynamicData, answer string) bool {
	if data == nil || data.Kind != domain.DynamicCountryMatch {
		return false
	}
	for _, c := range data.Candidates {
		if answer == normalize(c) {
			return true
		}
	}
	return false
}

// checkSingleCountry accepts only the payload's first candidate.
func checkSingleCountry(data *domain.DynamicData, answer string) bool {
	if data == nil || data.Kind != domain.DynamicCountryMatch || len(data.Candidates) == 0 {
		return false
	}
	return answer == normalize(data.Candidates[0])
}

// checkCurrency compares against the currency of the country the player
// named in their fourth answer.
func checkCurrency(ctx Context, answer string) bool {
	country, ok := previousAnswer(ctx, 3)
	if !ok {
		return false
	}
	currency, ok := catalog.Currency(country)
	return ok && answer == currency
}

func checkUnscrambled(data *domain.DynamicData, answer string) bool {
	if data == nil || data.Kind != domain.DynamicExactCity || data.City == "" {
		return false
	}
	return answer == normalize(data.City)
}

func checkSecondCity(ctx Context, answer string) bool {
	country, ok := previousAnswer(ctx, 0)
	if !ok {
		return false
	}
	city, ok := catalog.SecondCityAfterShift(country, regionShift)
	return ok && answer == city
}

func checkIndependenceYear(answer string) bool {
	year, err := strconv.Atoi(answer)
	if err != nil {
		return false
	}
	_, ok := catalog.IndependenceYearSet()[year]
	return ok
}
