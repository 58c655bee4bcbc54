package app

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"geotrivia-service/internal/catalog"
	"geotrivia-service/internal/domain"
	"geotrivia-service/internal/validate"
)

// SessionRepository abstracts how game sessions are stored (in-memory,
// Redis, etc). Implementations treat records older than their retention
// window as absent.
type SessionRepository interface {
	SaveState(ctx context.Context, state *domain.GameState) error
	// LoadState returns domain.ErrSessionNotFound for missing or aged-out sessions.
	LoadState(ctx context.Context, sessionID string) (*domain.GameState, error)
	ClearState(ctx context.Context, sessionID string) error
	// ActiveSession returns the email's active session ID, self-healing the
	// pointer (without deleting the record) when the pointed-to session is
	// gone or already finished.
	ActiveSession(ctx context.Context, email string) (string, error)
	UserSessions(ctx context.Context, email string) ([]string, error)
	MarkActive(ctx context.Context, email, sessionID string) error
	ClearActive(ctx context.Context, email string) error
}

// GroupRepository loads question-group content (from cache/backing store).
type GroupRepository interface {
	GetGroup(ctx context.Context, groupID string) (domain.QuestionGroup, error)
	ListGroups(ctx context.Context) ([]domain.QuestionGroup, error)
}

// SubmitResult is the outcome of one answer submission.
type SubmitResult struct {
	Correct  bool
	Finished bool
	State    *domain.GameState
	Reward   *domain.Reward
}

// GameService orchestrates game sessions: it creates and resumes them,
// advances question pointers, tallies scores, and persists every mutation.
type GameService struct {
	sessions  SessionRepository
	groups    GroupRepository
	generator *catalog.Generator
	now       func() time.Time
	newID     func() string
}

// Option customizes a GameService; used by tests for deterministic clocks
// and session IDs.
type Option func(*GameService)

func WithClock(now func() time.Time) Option {
	return func(s *GameService) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *GameService) { s.newID = newID }
}

func WithGenerator(g *catalog.Generator) Option {
	return func(s *GameService) { s.generator = g }
}

func NewGameService(sessions SessionRepository, groups GroupRepository, opts ...Option) *GameService {
	s := &GameService{
		sessions:  sessions,
		groups:    groups,
		generator: catalog.NewGenerator(),
		now:       time.Now,
		newID:     func() string { return "game-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadOrCreate resumes an existing session or creates a fresh one. Lookup
// order: the email's active session (only if still in progress), then the
// explicit session ID, then a new session. If an email is given, the
// returned session is marked active for it.
func (s *GameService) LoadOrCreate(ctx context.Context, sessionID, email, groupID string) (domain.SessionInfo, error) {
	if email != "" {
		if activeID, err := s.sessions.ActiveSession(ctx, email); err == nil && activeID != "" {
			if state, err := s.sessions.LoadState(ctx, activeID); err == nil && state.Status == domain.StatusInProgress {
				s.markActive(ctx, email, activeID)
				return domain.SessionInfo{Existing: true, SessionID: activeID, State: state}, nil
			}
		}
	}

	if sessionID != "" {
		if state, err := s.sessions.LoadState(ctx, sessionID); err == nil && state.Status == domain.StatusInProgress {
			s.markActive(ctx, email, sessionID)
			return domain.SessionInfo{Existing: true, SessionID: sessionID, State: state}, nil
		}
	}

	return s.StartNew(ctx, email, groupID)
}

// StartNew unconditionally creates and persists a fresh session. Any prior
// active session for the email loses its active marker; its record is kept.
func (s *GameService) StartNew(ctx context.Context, email, groupID string) (domain.SessionInfo, error) {
	if email != "" {
		if err := s.sessions.ClearActive(ctx, email); err != nil {
			log.Printf("game: clearing active session for %s: %v", email, err)
		}
	}

	if groupID == "" {
		groupID = catalog.DefaultGroupID
	}
	if _, err := s.groups.GetGroup(ctx, groupID); err != nil {
		return domain.SessionInfo{}, err
	}

	state := &domain.GameState{
		SessionID:     s.newID(),
		Email:         email,
		Authenticated: email != "",
		GroupID:       groupID,
		Status:        domain.StatusInProgress,
		StartedAt:     s.now(),
	}
	s.persist(ctx, state)
	s.markActive(ctx, email, state.SessionID)
	return domain.SessionInfo{SessionID: state.SessionID, State: state}, nil
}

// CurrentQuestion instantiates the session's active question for display:
// dynamic content is rolled here and captured on the state so that the
// later validation sees exactly what the player saw. The re-instantiated
// payload is persisted alongside the state.
func (s *GameService) CurrentQuestion(ctx context.Context, state *domain.GameState) (domain.Question, error) {
	group, err := s.groups.GetGroup(ctx, state.GroupID)
	if err != nil {
		return domain.Question{}, err
	}
	if state.CurrentQuestion < 0 || state.CurrentQuestion >= len(group.Questions) {
		return domain.Question{}, domain.ErrQuestionNotFound
	}

	question := s.generator.Instantiate(group.Questions[state.CurrentQuestion], state.Answers)
	state.DynamicData = question.DynamicData
	state.ScrambledWord = ""
	if question.DynamicData != nil && question.DynamicData.Kind == domain.DynamicExactCity {
		state.ScrambledWord = question.DynamicData.Subject
	}
	s.persist(ctx, state)
	return question, nil
}

// SubmitAnswer validates the answer for the session's active question and
// applies the state machine: a correct answer advances the pointer (or
// completes the group on the last question); a wrong answer keeps the
// pointer in place and fails the session once the group's wrong-answer
// budget is exhausted. The mutated state is persisted before returning.
func (s *GameService) SubmitAnswer(ctx context.Context, state *domain.GameState, rawAnswer string) (SubmitResult, error) {
	if state.Status.Terminal() {
		return SubmitResult{}, domain.ErrSessionFinished
	}

	group, err := s.groups.GetGroup(ctx, state.GroupID)
	if err != nil {
		return SubmitResult{}, err
	}
	if state.CurrentQuestion < 0 || state.CurrentQuestion >= len(group.Questions) {
		return SubmitResult{}, domain.ErrQuestionNotFound
	}
	question := group.Questions[state.CurrentQuestion]

	correct := validate.Validate(validate.Context{
		Answer:          rawAnswer,
		QuestionID:      question.ID,
		PreviousAnswers: state.Answers,
		GroupID:         state.GroupID,
		ScrambledWord:   state.ScrambledWord,
		DynamicData:     state.DynamicData,
	}, question.Validator)

	recordAnswer(state, rawAnswer)
	if correct {
		state.CorrectAnswers++
	} else {
		state.WrongAnswers++
	}

	total := len(group.Questions)
	if ended, status := shouldEndGame(state.CorrectAnswers, state.WrongAnswers, total, group.MaxWrong); ended {
		state.Status = status
		if status == domain.StatusCompleted && !state.HasCompleted(group.ID) {
			state.CompletedGroups = append(state.CompletedGroups, group.ID)
		}
	} else if correct {
		state.CurrentQuestion++
		state.DynamicData = nil
		state.ScrambledWord = ""
	}

	s.persist(ctx, state)
	if state.Status.Terminal() && state.Email != "" {
		if err := s.sessions.ClearActive(ctx, state.Email); err != nil {
			log.Printf("game: clearing active session for %s: %v", state.Email, err)
		}
	}

	result := SubmitResult{Correct: correct, Finished: state.Status.Terminal(), State: state}
	if state.Status == domain.StatusCompleted {
		result.Reward = group.Reward
	}
	return result, nil
}

// LoadSession fetches a session by ID.
func (s *GameService) LoadSession(ctx context.Context, sessionID string) (*domain.GameState, error) {
	return s.sessions.LoadState(ctx, sessionID)
}

// ClearSession deletes a session record.
func (s *GameService) ClearSession(ctx context.Context, sessionID string) error {
	return s.sessions.ClearState(ctx, sessionID)
}

// ClearUserSessions drops the email's active pointer and every session
// record it still tracks.
func (s *GameService) ClearUserSessions(ctx context.Context, email string) error {
	ids, err := s.sessions.UserSessions(ctx, email)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.sessions.ClearState(ctx, id); err != nil {
			return err
		}
	}
	return s.sessions.ClearActive(ctx, email)
}

// GetGroup exposes group lookup to transports.
func (s *GameService) GetGroup(ctx context.Context, groupID string) (domain.QuestionGroup, error) {
	return s.groups.GetGroup(ctx, groupID)
}

// ListGroups exposes the ordered group list to transports.
func (s *GameService) ListGroups(ctx context.Context) ([]domain.QuestionGroup, error) {
	return s.groups.ListGroups(ctx)
}

// persist writes the state, logging and carrying on if the backend fails:
// gameplay continues in memory even when persistence is down.
func (s *GameService) persist(ctx context.Context, state *domain.GameState) {
	if err := s.sessions.SaveState(ctx, state); err != nil {
		log.Printf("game: persisting session %s: %v", state.SessionID, err)
	}
}

func (s *GameService) markActive(ctx context.Context, email, sessionID string) {
	if email == "" {
		return
	}
	if err := s.sessions.MarkActive(ctx, email, sessionID); err != nil {
		log.Printf("game: marking session %s active for %s: %v", sessionID, email, err)
	}
}

// recordAnswer keeps Answers index-aligned with the question order: the
// first attempt at a question appends, a retry after a wrong answer
// overwrites the previous attempt in place.
func recordAnswer(state *domain.GameState, answer string) {
	if len(state.Answers) > state.CurrentQuestion {
		state.Answers[state.CurrentQuestion] = answer
		return
	}
	state.Answers = append(state.Answers, answer)
}

// CalculateProgress returns the percentage of questions passed so far.
func CalculateProgress(currentQuestion, total int) int {
	if total <= 0 {
		return 0
	}
	if currentQuestion < 0 {
		return 0
	}
	if currentQuestion >= total {
		return 100
	}
	return currentQuestion * 100 / total
}

// shouldEndGame decides whether the session is over. Completion is checked
// before failure so a simultaneous hit of both thresholds counts as a win.
func shouldEndGame(correct, wrong, total, maxWrong int) (bool, domain.GameStatus) {
	if correct >= total {
		return true, domain.StatusCompleted
	}
	if wrong >= maxWrong {
		return true, domain.StatusFailed
	}
	return false, domain.StatusInProgress
}
