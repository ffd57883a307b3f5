package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNoUser is returned by use cases that need a loaded user when the store is empty
var ErrNoUser = errors.New("no user loaded")

// UserStore defines the interface for the session's current-user container.
// Mutations issued while no user is loaded are silent no-ops.
type UserStore interface {
	// Current returns a snapshot of the current user
	// The boolean is false when no user is loaded
	Current() (UserState, bool)

	// SetCurrent replaces the whole user state
	SetCurrent(state UserState)

	// Patch shallow-merges the non-nil fields of the patch into the current user
	Patch(patch UserPatch)

	// Clear unloads the current user
	Clear()

	// GrantReward adds xpDelta to XP and cashDelta to cash in one update
	// cashDelta may be negative (e.g. paying for an asset)
	GrantReward(xpDelta int, cashDelta decimal.Decimal)

	// AdvanceLesson records the resume index for a category
	// Indexes never move backwards
	AdvanceLesson(category string, index int)

	// Update runs fn against the current user under the store lock and commits the result
	// as one mutation with a single notification.
	// Returns ErrNoUser without calling fn when no user is loaded. When fn returns an error
	// the user fields are left untouched; changes fn made to the shared Portfolio are not
	// rolled back, so fn must fail before touching it.
	Update(fn func(user *UserState) error) (UserState, error)
}

// LessonCatalog defines the interface for read-only lesson content
type LessonCatalog interface {
	// Lesson retrieves a lesson by category name and position
	Lesson(category string, index int) (Lesson, bool)

	// Default returns the lesson used when a lookup misses
	Default() Lesson

	// Categories lists the category names in definition order
	Categories() []string
}
