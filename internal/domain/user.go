package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// XPPerLevel is the amount of XP needed to climb one level
const XPPerLevel = 500

// UserState represents the signed-in learner for the duration of a session.
// The user exclusively owns its Portfolio; the valuation has no lifecycle of its own.
type UserState struct {
	ID          uuid.UUID
	DisplayName string
	Initials    string // Avatar fallback

	XP               int
	Level            int
	LessonsCompleted int
	LessonProgress   map[string]int // Category name -> index of the lesson to resume

	Cash   decimal.Decimal // In-app coins
	Streak int             // Consecutive days with a completed lesson

	Portfolio *PortfolioValuation

	Rank       int
	RankChange string // e.g. "+2", "-1", "0"
	BadgeIDs   []string
	Titles     []string
}

// Validate ensures the user adheres to domain rules
func (u *UserState) Validate() error {
	if u.ID == uuid.Nil {
		return errors.New("user ID cannot be empty")
	}

	if strings.TrimSpace(u.DisplayName) == "" {
		return errors.New("user display name cannot be empty")
	}

	if u.Portfolio == nil {
		return errors.New("user must own a portfolio")
	}

	return nil
}

// Clone returns a copy whose maps and slices are independent of the original.
// The Portfolio pointer is shared: it is the same owned valuation.
func (u UserState) Clone() UserState {
	if u.LessonProgress != nil {
		progress := make(map[string]int, len(u.LessonProgress))
		for category, index := range u.LessonProgress {
			progress[category] = index
		}
		u.LessonProgress = progress
	}
	if u.BadgeIDs != nil {
		u.BadgeIDs = append([]string(nil), u.BadgeIDs...)
	}
	if u.Titles != nil {
		u.Titles = append([]string(nil), u.Titles...)
	}
	return u
}

// LessonIndex returns the resume index for a category, 0 when the category was never started
func (u UserState) LessonIndex(category string) int {
	return u.LessonProgress[category]
}

// AdvanceLesson records the resume index for a category.
// Indexes lower than or equal to the recorded one are ignored; it reports whether progress moved.
func (u *UserState) AdvanceLesson(category string, index int) bool {
	if current, ok := u.LessonProgress[category]; ok && index <= current {
		return false
	}
	if u.LessonProgress == nil {
		u.LessonProgress = make(map[string]int)
	}
	u.LessonProgress[category] = index
	return true
}

// UserPatch is a shallow partial update of a UserState. Nil fields are left untouched.
// Portfolio replaces the owned valuation pointer; its internals are never merged.
type UserPatch struct {
	DisplayName      *string
	Initials         *string
	XP               *int
	Level            *int
	LessonsCompleted *int
	LessonProgress   map[string]int
	Cash             *decimal.Decimal
	Streak           *int
	Portfolio        *PortfolioValuation
	Rank             *int
	RankChange       *string
	BadgeIDs         []string
	Titles           []string
}

// IsEmpty reports whether the patch carries no field at all
func (p UserPatch) IsEmpty() bool {
	return p.DisplayName == nil && p.Initials == nil && p.XP == nil && p.Level == nil &&
		p.LessonsCompleted == nil && p.LessonProgress == nil && p.Cash == nil &&
		p.Streak == nil && p.Portfolio == nil && p.Rank == nil && p.RankChange == nil &&
		p.BadgeIDs == nil && p.Titles == nil
}

// Apply merges the non-nil patch fields into u
func (p UserPatch) Apply(u *UserState) {
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Initials != nil {
		u.Initials = *p.Initials
	}
	if p.XP != nil {
		u.XP = *p.XP
	}
	if p.Level != nil {
		u.Level = *p.Level
	}
	if p.LessonsCompleted != nil {
		u.LessonsCompleted = *p.LessonsCompleted
	}
	if p.LessonProgress != nil {
		progress := make(map[string]int, len(p.LessonProgress))
		for category, index := range p.LessonProgress {
			progress[category] = index
		}
		u.LessonProgress = progress
	}
	if p.Cash != nil {
		u.Cash = *p.Cash
	}
	if p.Streak != nil {
		u.Streak = *p.Streak
	}
	if p.Portfolio != nil {
		u.Portfolio = p.Portfolio
	}
	if p.Rank != nil {
		u.Rank = *p.Rank
	}
	if p.RankChange != nil {
		u.RankChange = *p.RankChange
	}
	if p.BadgeIDs != nil {
		u.BadgeIDs = append([]string(nil), p.BadgeIDs...)
	}
	if p.Titles != nil {
		u.Titles = append([]string(nil), p.Titles...)
	}
}

// InitialsFor derives up to two avatar initials from a display name ("Alex Morgan" -> "AM")
func InitialsFor(displayName string) string {
	var initials []rune
	for _, word := range strings.Fields(displayName) {
		initials = append(initials, []rune(strings.ToUpper(word))[0])
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

// LevelFor returns the level reached with the given XP, starting at level 1
func LevelFor(xp int) int {
	if xp < 0 {
		return 1
	}
	return 1 + xp/XPPerLevel
}
