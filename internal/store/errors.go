package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist or is
	// not visible through the queried collection.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint (profile per user, thread pair, progress pair, correct
	// option per question).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or
	// references a missing parent. Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrProfileNotFound  = fmt.Errorf("%w: profile", ErrNotFound)
	ErrChapterNotFound  = fmt.Errorf("%w: chapter", ErrNotFound)
	ErrLessonNotFound   = fmt.Errorf("%w: lesson", ErrNotFound)
	ErrPostNotFound     = fmt.Errorf("%w: post", ErrNotFound)
	ErrCommentNotFound  = fmt.Errorf("%w: comment", ErrNotFound)
	ErrProgressNotFound = fmt.Errorf("%w: lesson progress", ErrNotFound)
	ErrThreadNotFound   = fmt.Errorf("%w: thread", ErrNotFound)
	ErrQuestionNotFound = fmt.Errorf("%w: picture guess question", ErrNotFound)
	ErrOptionNotFound   = fmt.Errorf("%w: multiple choice option", ErrNotFound)
	ErrExerciseNotFound = fmt.Errorf("%w: matching exercise", ErrNotFound)
	ErrPuzzleNotFound   = fmt.Errorf("%w: sentence puzzle", ErrNotFound)
	ErrAboutNotFound    = fmt.Errorf("%w: about", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrUsernameExists indicates that a user with the given username
	// already exists.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)

	// ErrEmailExists indicates that a user with the given email already
	// exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrProgressExists indicates that a progress record for the
	// (user, lesson) pair already exists.
	ErrProgressExists = fmt.Errorf("%w: lesson progress", ErrDuplicate)

	// ErrThreadExists indicates that a thread between the same user pair
	// already exists.
	ErrThreadExists = fmt.Errorf("%w: thread", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
