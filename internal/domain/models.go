package domain

import "time"

// GameStatus is the lifecycle state of one session.
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusCompleted  GameStatus = "completed"
	StatusFailed     GameStatus = "failed"
)

// Terminal reports whether the session can no longer be mutated.
func (s GameStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ValidatorKind is the closed set of answer validators. Keeping this an
// enum (rather than free-form validator names) lets the dispatch table be
// exhaustive; anything outside the set fails closed.
type ValidatorKind string

const (
	ValidatorStarFlag         ValidatorKind = "star_flag_country"
	ValidatorMostPopulousCity ValidatorKind = "most_populous_city"
	ValidatorDishOrigin       ValidatorKind = "dish_origin"
	ValidatorNeighborCountry  ValidatorKind = "neighbor_country"
	ValidatorLanguageOrigin   ValidatorKind = "language_origin"
	ValidatorArtistOrigin     ValidatorKind = "artist_origin"
	ValidatorCurrency         ValidatorKind = "currency"
	ValidatorUnscrambledCity  ValidatorKind = "unscrambled_city"
	ValidatorSecondCityRiddle ValidatorKind = "second_city_riddle"
	ValidatorIndependenceYear ValidatorKind = "independence_year"
)

// DynamicKind discriminates the payload generated for dynamic questions.
type DynamicKind string

const (
	// DynamicCountryMatch carries one or more acceptable country answers.
	DynamicCountryMatch DynamicKind = "country_match"
	// DynamicExactCity carries the unscrambled original city name.
	DynamicExactCity DynamicKind = "exact_city"
)

// DynamicData is the per-instance payload of a dynamic question. Exactly one
// of the value fields is meaningful, selected by Kind.
type DynamicData struct {
	Kind DynamicKind `json:"kind"`
	// Candidates holds the acceptable country answers when Kind is
	// DynamicCountryMatch. A single-country question uses a one-element slice.
	Candidates []string `json:"candidates,omitempty"`
	// City holds the original (unscrambled) city when Kind is DynamicExactCity.
	City string `json:"city,omitempty"`
	// Subject is the picked entry shown to the player (the dish, language,
	// artist, or scrambled word).
	Subject string `json:"subject,omitempty"`
}

// Question is an immutable question template inside a group. Title and
// Description may contain placeholders resolved at render time; Dynamic
// questions additionally receive a DynamicData payload when instantiated.
type Question struct {
	ID          int           `json:"id"` // 1-based, unique within the group
	Dynamic     bool          `json:"dynamic"`
	Emoji       string        `json:"emoji"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Placeholder string        `json:"placeholder"`
	Validator   ValidatorKind `json:"validator"`
	// DynamicData is zero on the stored template; populated on instantiation.
	DynamicData *DynamicData `json:"dynamicData,omitempty"`
}

// Reward describes what finishing a group earns.
type Reward struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       string `json:"level"`
}

// QuestionGroup is a named, ordered round of questions with its own
// pass/fail thresholds. Groups are immutable once loaded.
type QuestionGroup struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Questions       []Question `json:"questions"`
	MaxWrong        int        `json:"maxWrong"`
	RequiredCorrect int        `json:"requiredCorrect"`
	Reward          *Reward    `json:"reward,omitempty"`
}

// GameState is one player's attempt at a question group.
type GameState struct {
	SessionID       string       `json:"sessionId"`
	Email           string       `json:"email,omitempty"`
	Authenticated   bool         `json:"authenticated"`
	GroupID         string       `json:"groupId"`
	CurrentQuestion int          `json:"currentQuestion"` // 0-based index into the group's questions
	Answers         []string     `json:"answers"`
	CorrectAnswers  int          `json:"correctAnswers"`
	WrongAnswers    int          `json:"wrongAnswers"`
	Status          GameStatus   `json:"status"`
	StartedAt       time.Time    `json:"startedAt"`
	ScrambledWord   string       `json:"scrambledWord,omitempty"`
	DynamicData     *DynamicData `json:"dynamicData,omitempty"`
	CompletedGroups []string     `json:"completedGroups,omitempty"`
}

// HasCompleted reports whether groupID is already in the completed list.
func (g *GameState) HasCompleted(groupID string) bool {
	for _, id := range g.CompletedGroups {
		if id == groupID {
			return true
		}
	}
	return false
}

// SessionInfo is what session lookup/creation returns to callers.
type SessionInfo struct {
	Existing  bool       `json:"existing"`
	SessionID string     `json:"sessionId"`
	State     *GameState `json:"state"`
}
