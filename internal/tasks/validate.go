package tasks

import (
	"errors"
	"strings"
	"tasklist/internal/models"
	"unicode/utf8"
)

const MinTextLength = 10

var (
	ErrEmptyText  = errors.New("text cannot be empty")
	ErrTooShort   = errors.New("text must be at least 10 characters")
	ErrOnlyDigits = errors.New("text cannot be only numbers")
	ErrDuplicate  = errors.New("a task with this text already exists")
)

// ValidationError is a rejected task text. Its message is safe to show to the user.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ValidateText applies the rules in order and returns the trimmed text on
// success. excludeID is the task being edited, which never counts as its
// own duplicate.
func ValidateText(text string, existing []models.Task, excludeID string) (string, error) {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return "", &ValidationError{Err: ErrEmptyText}
	}
	if utf8.RuneCountInString(trimmed) < MinTextLength {
		return "", &ValidationError{Err: ErrTooShort}
	}
	if onlyDigits(trimmed) {
		return "", &ValidationError{Err: ErrOnlyDigits}
	}
	for _, t := range existing {
		if t.ID != excludeID && strings.EqualFold(strings.TrimSpace(t.Text), trimmed) {
			return "", &ValidationError{Err: ErrDuplicate}
		}
	}

	return trimmed, nil
}

func onlyDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return s != ""
}
