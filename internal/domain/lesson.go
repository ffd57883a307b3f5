package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuestion is returned when a question cannot be answered as defined
var ErrInvalidQuestion = errors.New("invalid question")

// Question is a single multiple-choice prompt of a lesson
type Question struct {
	Prompt        string
	Choices       []string
	CorrectAnswer string // Must be one of Choices
}

// Validate ensures the question is answerable
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: prompt cannot be empty", ErrInvalidQuestion)
	}

	if len(q.Choices) < 2 {
		return fmt.Errorf("%w: %q must offer at least two choices", ErrInvalidQuestion, q.Prompt)
	}

	for _, choice := range q.Choices {
		if choice == q.CorrectAnswer {
			return nil
		}
	}

	return fmt.Errorf("%w: correct answer %q of %q is not one of the choices", ErrInvalidQuestion, q.CorrectAnswer, q.Prompt)
}

// IsCorrect reports whether answer matches the correct answer
func (q *Question) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// Lesson is an ordered sequence of questions within a category
type Lesson struct {
	Category  string
	Name      string
	Questions []Question
}

// Validate ensures the lesson and every one of its questions adhere to domain rules
func (l *Lesson) Validate() error {
	if strings.TrimSpace(l.Category) == "" {
		return errors.New("lesson category cannot be empty")
	}

	if strings.TrimSpace(l.Name) == "" {
		return errors.New("lesson name cannot be empty")
	}

	if len(l.Questions) == 0 {
		return fmt.Errorf("lesson %q must have at least one question", l.Name)
	}

	for i := range l.Questions {
		if err := l.Questions[i].Validate(); err != nil {
			return fmt.Errorf("lesson %q question %d: %w", l.Name, i+1, err)
		}
	}

	return nil
}

// Clone returns a deep copy so callers cannot alter catalog content
func (l Lesson) Clone() Lesson {
	questions := make([]Question, len(l.Questions))
	for i, q := range l.Questions {
		questions[i] = Question{
			Prompt:        q.Prompt,
			Choices:       append([]string(nil), q.Choices...),
			CorrectAnswer: q.CorrectAnswer,
		}
	}
	l.Questions = questions
	return l
}

// LessonCategory is an ordered list of lessons sharing a category name
type LessonCategory struct {
	Name    string
	Lessons []Lesson
}
