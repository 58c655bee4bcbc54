package domain

import "errors"

var (
	// ErrSessionNotFound is returned when no session exists for a given ID
	// (or its record has aged out).
	ErrSessionNotFound = errors.New("game session not found")
	// ErrGroupNotFound indicates the question group could not be loaded.
	ErrGroupNotFound = errors.New("question group not found")
	// ErrQuestionNotFound indicates the current question index points past
	// the group's question list.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrSessionFinished is returned when a mutation is attempted on a
	// completed or failed session.
	ErrSessionFinished = errors.New("game session already finished")
)
