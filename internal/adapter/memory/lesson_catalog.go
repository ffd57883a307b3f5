package memory

import (
	"errors"
	"fmt"

	"github.com/simaogato/finquest-backend/internal/domain"
)

// lessonCatalog implements domain.LessonCatalog over a fixed definition
type lessonCatalog struct {
	categories []string
	lessons    map[string][]domain.Lesson
}

// NewLessonCatalog validates every lesson once and returns an immutable catalog.
// Lessons inherit the category name they are listed under.
func NewLessonCatalog(definition []domain.LessonCategory) (domain.LessonCatalog, error) {
	if len(definition) == 0 {
		return nil, errors.New("lesson catalog must have at least one category")
	}

	c := &lessonCatalog{
		lessons: make(map[string][]domain.Lesson, len(definition)),
	}

	for _, category := range definition {
		if category.Name == "" {
			return nil, errors.New("lesson category name cannot be empty")
		}
		if _, exists := c.lessons[category.Name]; exists {
			return nil, fmt.Errorf("duplicate lesson category %q", category.Name)
		}
		if len(category.Lessons) == 0 {
			return nil, fmt.Errorf("lesson category %q must have at least one lesson", category.Name)
		}

		lessons := make([]domain.Lesson, 0, len(category.Lessons))
		for _, lesson := range category.Lessons {
			lesson = lesson.Clone()
			lesson.Category = category.Name
			if err := lesson.Validate(); err != nil {
				return nil, fmt.Errorf("invalid lesson catalog: %w", err)
			}
			lessons = append(lessons, lesson)
		}

		c.categories = append(c.categories, category.Name)
		c.lessons[category.Name] = lessons
	}

	return c, nil
}

// Lesson retrieves a lesson by category name and position
func (c *lessonCatalog) Lesson(category string, index int) (domain.Lesson, bool) {
	lessons, ok := c.lessons[category]
	if !ok || index < 0 || index >= len(lessons) {
		return domain.Lesson{}, false
	}
	return lessons[index].Clone(), true
}

// Default returns the first lesson of the first category
func (c *lessonCatalog) Default() domain.Lesson {
	return c.lessons[c.categories[0]][0].Clone()
}

// Categories lists the category names in definition order
func (c *lessonCatalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// DefaultLessons is the built-in lesson content shipped with the app
func DefaultLessons() []domain.LessonCategory {
	return []domain.LessonCategory{
		{
			Name: "Budgeting",
			Lessons: []domain.Lesson{
				{
					Name: "Budget Basics",
					Questions: []domain.Question{
						{
							Prompt:        "What is a budget?",
							Choices:       []string{"A plan for spending and saving", "A type of bank account", "A credit score", "A tax form"},
							CorrectAnswer: "A plan for spending and saving",
						},
						{
							Prompt:        "In the 50/30/20 rule, what share of income goes to savings?",
							Choices:       []string{"50%", "30%", "20%", "10%"},
							CorrectAnswer: "20%",
						},
					},
				},
				{
					Name: "Emergency Funds",
					Questions: []domain.Question{
						{
							Prompt:        "How many months of expenses should an emergency fund usually cover?",
							Choices:       []string{"1 month", "3 to 6 months", "2 years", "None"},
							CorrectAnswer: "3 to 6 months",
						},
						{
							Prompt:        "Where is an emergency fund best kept?",
							Choices:       []string{"In crypto", "In a high-yield savings account", "In collectibles"},
							CorrectAnswer: "In a high-yield savings account",
						},
					},
				},
			},
		},
		{
			Name: "Investing",
			Lessons: []domain.Lesson{
				{
					Name: "Stocks and ETFs",
					Questions: []domain.Question{
						{
							Prompt:        "What does owning a share of stock mean?",
							Choices:       []string{"You lent money to a company", "You own part of a company", "You insured a company"},
							CorrectAnswer: "You own part of a company",
						},
						{
							Prompt:        "What is an ETF?",
							Choices:       []string{"A single company's stock", "A basket of securities traded like a stock", "A savings bond"},
							CorrectAnswer: "A basket of securities traded like a stock",
						},
					},
				},
				{
					Name: "Diversification",
					Questions: []domain.Question{
						{
							Prompt:        "Why diversify a portfolio?",
							Choices:       []string{"To guarantee profits", "To reduce risk", "To avoid taxes"},
							CorrectAnswer: "To reduce risk",
						},
						{
							Prompt:        "Which asset class is usually the most volatile?",
							Choices:       []string{"Bonds", "Real estate", "Crypto"},
							CorrectAnswer: "Crypto",
						},
					},
				},
			},
		},
		{
			Name: "Credit",
			Lessons: []domain.Lesson{
				{
					Name: "Credit Scores",
					Questions: []domain.Question{
						{
							Prompt:        "Which factor affects a credit score the most?",
							Choices:       []string{"Payment history", "Your age", "Your income"},
							CorrectAnswer: "Payment history",
						},
						{
							Prompt:        "What happens when you only pay a card's minimum?",
							Choices:       []string{"Nothing", "Interest accrues on the balance", "The debt is forgiven"},
							CorrectAnswer: "Interest accrues on the balance",
						},
					},
				},
			},
		},
	}
}
