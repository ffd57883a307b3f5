package lesson

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/finquest-backend/internal/domain"
)

// Reward constants for completing a lesson
const (
	XPPerLesson        = 25
	XPPerCorrectAnswer = 5
)

// ErrLessonNotFound is returned when completing a (category, index) the catalog does not have
var ErrLessonNotFound = errors.New("lesson not found")

// CoinsPerLesson is the cash granted for each completed lesson
var CoinsPerLesson = decimal.NewFromInt(10)

// CompletionResult describes the rewards and progress after finishing a lesson
type CompletionResult struct {
	Lesson         domain.Lesson
	CorrectAnswers int
	TotalQuestions int
	XPEarned       int
	CashEarned     decimal.Decimal
	NextIndex      int // Resume index recorded for the lesson's category
	Level          int
}

// LessonService resolves lesson content and records lesson progress
type LessonService struct {
	Catalog   domain.LessonCatalog
	UserStore domain.UserStore
	log       zerolog.Logger
}

// NewLessonService creates a new LessonService instance
func NewLessonService(catalog domain.LessonCatalog, userStore domain.UserStore, log zerolog.Logger) *LessonService {
	return &LessonService{
		Catalog:   catalog,
		UserStore: userStore,
		log:       log.With().Str("service", "lesson").Logger(),
	}
}

// ResolveLesson turns navigation parameters into a concrete lesson
// A miss (unknown category, out-of-range index) falls back to the catalog default
func (s *LessonService) ResolveLesson(category string, index int) domain.Lesson {
	if lesson, ok := s.Catalog.Lesson(category, index); ok {
		return lesson
	}

	s.log.Debug().Str("category", category).Int("index", index).Msg("lesson not found, using default")
	return s.Catalog.Default()
}

// ResumeLesson resolves the lesson the current user should continue with in a category
// and its position within its own category.
// Without a loaded user it starts from the first lesson of the category
func (s *LessonService) ResumeLesson(category string) (domain.Lesson, int) {
	index := 0
	if user, ok := s.UserStore.Current(); ok {
		index = user.LessonIndex(category)
	}

	if lesson, ok := s.Catalog.Lesson(category, index); ok {
		return lesson, index
	}

	s.log.Debug().Str("category", category).Int("index", index).Msg("category finished or unknown, using default")
	return s.Catalog.Default(), 0
}

// Grade counts the answers that match the lesson's questions position by position
// Missing answers count as wrong and extra answers are ignored
func Grade(lesson domain.Lesson, answers []string) int {
	correct := 0
	for i := range lesson.Questions {
		if i < len(answers) && lesson.Questions[i].IsCorrect(answers[i]) {
			correct++
		}
	}
	return correct
}

// CompleteLesson grades a finished lesson and rewards the current user
// Logic:
//   - XP: XPPerLesson plus XPPerCorrectAnswer for each correct answer
//   - Cash: CoinsPerLesson
//   - Lessons completed +1, level recomputed from XP
//   - Category progress advances to index+1 (never backwards)
//
// All of the above is applied as one store update.
// An unknown lesson returns ErrLessonNotFound and grants nothing; there is no default fallback here.
func (s *LessonService) CompleteLesson(ctx context.Context, category string, index int, answers []string) (*CompletionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lesson, found := s.Catalog.Lesson(category, index)
	if !found {
		s.log.Warn().Str("category", category).Int("index", index).Msg("completion rejected: lesson not found")
		return nil, ErrLessonNotFound
	}

	correct := Grade(lesson, answers)
	xp := XPPerLesson + correct*XPPerCorrectAnswer

	state, err := s.UserStore.Update(func(user *domain.UserState) error {
		user.XP += xp
		user.Cash = user.Cash.Add(CoinsPerLesson)
		user.LessonsCompleted++
		user.Level = domain.LevelFor(user.XP)
		user.AdvanceLesson(lesson.Category, index+1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("category", lesson.Category).
		Str("lesson", lesson.Name).
		Int("correct", correct).
		Int("questions", len(lesson.Questions)).
		Int("xp_earned", xp).
		Msg("lesson completed")

	return &CompletionResult{
		Lesson:         lesson,
		CorrectAnswers: correct,
		TotalQuestions: len(lesson.Questions),
		XPEarned:       xp,
		CashEarned:     CoinsPerLesson,
		NextIndex:      state.LessonIndex(lesson.Category),
		Level:          state.Level,
	}, nil
}
