package catalog

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"geotrivia-service/internal/domain"
)

// Pools backing dynamic questions. Every instantiation re-rolls a pick, so
// two renders of the same question may show different content; callers must
// capture one instantiated Question and use it for both display and
// validation.

type dishEntry struct {
	name      string
	countries []string
}

var dishes = []dishEntry{
	{"jollof rice", []string{"nigeria", "ghana", "senegal"}},
	{"injera", []string{"ethiopia"}},
	{"bobotie", []string{"south africa"}},
	{"tagine", []string{"morocco"}},
	{"fufu", []string{"ghana", "nigeria", "cameroon"}},
	{"nyama choma", []string{"kenya", "tanzania"}},
	{"couscous", []string{"morocco", "algeria", "tunisia"}},
	{"waakye", []string{"ghana"}},
	{"suya", []string{"nigeria"}},
	{"thieboudienne", []string{"senegal"}},
}

type originEntry struct {
	name    string
	country string
}

var languages = []originEntry{
	{"amharic", "ethiopia"},
	{"wolof", "senegal"},
	{"yoruba", "nigeria"},
	{"twi", "ghana"},
	{"somali", "somalia"},
	{"shona", "zimbabwe"},
	{"zulu", "south africa"},
	{"lingala", "democratic republic of congo"},
	{"ewe", "togo"},
	{"bambara", "mali"},
}

var artists = []originEntry{
	{"burna boy", "nigeria"},
	{"sarkodie", "ghana"},
	{"angelique kidjo", "benin"},
	{"youssou n'dour", "senegal"},
	{"miriam makeba", "south africa"},
	{"fally ipupa", "democratic republic of congo"},
	{"diamond platnumz", "tanzania"},
	{"sauti sol", "kenya"},
	{"magic system", "ivory coast"},
	{"salif keita", "mali"},
}

var scrambleCities = []string{
	"accra",
	"lagos",
	"nairobi",
	"dakar",
	"kumasi",
	"cairo",
	"maputo",
	"bamako",
	"harare",
	"kigali",
}

const (
	subjectToken     = "{{subject}}"
	answerTokenOpen  = "{{answer:"
	answerTokenClose = "}}"
)

// Generator instantiates question templates: it rolls dynamic content and
// resolves placeholder tokens against the player's earlier answers.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a Generator seeded from the wall clock.
func NewGenerator() *Generator {
	return NewGeneratorWithSource(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewGeneratorWithSource is test-only for deterministic picks.
func NewGeneratorWithSource(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Instantiate returns a display-ready copy of the question template. For
// dynamic questions it rolls a fresh pick and attaches the matching
// DynamicData payload; for all questions it substitutes answer tokens with
// entries from previousAnswers. Substitution is cosmetic only: validators
// consult previousAnswers directly, never the rendered text.
func (g *Generator) Instantiate(q domain.Question, previousAnswers []string) domain.Question {
	out := q
	if q.Dynamic {
		subject, data := g.roll(q.Validator)
		out.DynamicData = data
		out.Title = strings.ReplaceAll(out.Title, subjectToken, subject)
		out.Description = strings.ReplaceAll(out.Description, subjectToken, subject)
	}
	out.Title = substituteAnswers(out.Title, previousAnswers)
	out.Description = substituteAnswers(out.Description, previousAnswers)
	return out
}

func (g *Generator) roll(kind domain.ValidatorKind) (string, *domain.DynamicData) {
	switch kind {
	case domain.ValidatorDishOrigin:
		pick := dishes[g.rnd.Intn(len(dishes))]
		return pick.name, &domain.DynamicData{
			Kind:       domain.DynamicCountryMatch,
			Candidates: append([]string(nil), pick.countries...),
			Subject:    pick.name,
		}
	case domain.ValidatorLanguageOrigin:
		pick := languages[g.rnd.Intn(len(languages))]
		return pick.name, &domain.DynamicData{
			Kind:       domain.DynamicCountryMatch,
			Candidates: []string{pick.country},
			Subject:    pick.name,
		}
	case domain.ValidatorArtistOrigin:
		pick := artists[g.rnd.Intn(len(artists))]
		return pick.name, &domain.DynamicData{
			Kind:       domain.DynamicCountryMatch,
			Candidates: []string{pick.country},
			Subject:    pick.name,
		}
	case domain.ValidatorUnscrambledCity:
		city := scrambleCities[g.rnd.Intn(len(scrambleCities))]
		scrambled := g.scramble(city)
		return scrambled, &domain.DynamicData{
			Kind:    domain.DynamicExactCity,
			City:    city,
			Subject: scrambled,
		}
	default:
		return "", nil
	}
}

// scramble shuffles the letters of word until the result differs from the
// original. Single-letter words are returned as-is.
func (g *Generator) scramble(word string) string {
	letters := []rune(word)
	if len(letters) < 2 {
		return word
	}
	for attempt := 0; attempt < 10; attempt++ {
		g.rnd.Shuffle(len(letters), func(i, j int) {
			letters[i], letters[j] = letters[j], letters[i]
		})
		if string(letters) != word {
			break
		}
	}
	return string(letters)
}

// substituteAnswers replaces {{answer:N}} tokens (N is the 1-based question
// number) with the player's recorded answer. Tokens without a recorded
// answer render as an ellipsis rather than failing.
func substituteAnswers(text string, previousAnswers []string) string {
	for {
		start := strings.Index(text, answerTokenOpen)
		if start < 0 {
			return text
		}
		rest := text[start+len(answerTokenOpen):]
		end := strings.Index(rest, answerTokenClose)
		if end < 0 {
			return text
		}
		replacement := "..."
		if n, err := strconv.Atoi(rest[:end]); err == nil && n >= 1 && n <= len(previousAnswers) {
			if answer := strings.TrimSpace(previousAnswers[n-1]); answer != "" {
				replacement = titleCase(answer)
			}
		}
		text = text[:start] + replacement + text[start+len(answerTokenOpen)+end+len(answerTokenClose):]
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
