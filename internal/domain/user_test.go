package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUserState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    UserState
		wantErr bool
		errMsg  string
	}{
		{
			name: "User with portfolio should pass",
			user: UserState{
				ID:          uuid.New(),
				DisplayName: "Alex Morgan",
				Cash:        decimal.NewFromInt(50),
				Portfolio:   NewPortfolioValuation(nil),
			},
			wantErr: false,
		},
		{
			name: "User without ID should fail",
			user: UserState{
				DisplayName: "Alex Morgan",
				Portfolio:   NewPortfolioValuation(nil),
			},
			wantErr: true,
			errMsg:  "user ID cannot be empty",
		},
		{
			name: "User with blank display name should fail",
			user: UserState{
				ID:          uuid.New(),
				DisplayName: "   ",
				Portfolio:   NewPortfolioValuation(nil),
			},
			wantErr: true,
			errMsg:  "user display name cannot be empty",
		},
		{
			name: "User without portfolio should fail",
			user: UserState{
				ID:          uuid.New(),
				DisplayName: "Alex Morgan",
				// Portfolio is nil
			},
			wantErr: true,
			errMsg:  "user must own a portfolio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserState_Clone(t *testing.T) {
	portfolio := NewPortfolioValuation(nil)
	original := UserState{
		ID:             uuid.New(),
		DisplayName:    "Alex Morgan",
		LessonProgress: map[string]int{"Budgeting": 2},
		BadgeIDs:       []string{"first-lesson"},
		Titles:         []string{"Saver"},
		Portfolio:      portfolio,
	}

	clone := original.Clone()
	clone.LessonProgress["Budgeting"] = 5
	clone.BadgeIDs[0] = "changed"
	clone.Titles = append(clone.Titles, "Investor")

	assert.Equal(t, 2, original.LessonProgress["Budgeting"])
	assert.Equal(t, "first-lesson", original.BadgeIDs[0])
	assert.Len(t, original.Titles, 1)
	assert.Same(t, portfolio, clone.Portfolio) // Owned valuation is shared, not copied
}

func TestUserPatch_Apply(t *testing.T) {
	portfolio := NewPortfolioValuation(Breakdown{AssetClassStocks: decimal.NewFromInt(100)})
	user := UserState{
		ID:          uuid.New(),
		DisplayName: "Alex Morgan",
		XP:          100,
		Cash:        decimal.NewFromInt(50),
		Streak:      3,
		Portfolio:   portfolio,
	}

	cash := decimal.NewFromInt(999)
	streak := 4
	UserPatch{Cash: &cash, Streak: &streak}.Apply(&user)

	assert.True(t, decimal.NewFromInt(999).Equal(user.Cash))
	assert.Equal(t, 4, user.Streak)
	assert.Equal(t, 100, user.XP)
	assert.Equal(t, "Alex Morgan", user.DisplayName)
	assert.Same(t, portfolio, user.Portfolio)
	assert.True(t, decimal.NewFromInt(100).Equal(user.Portfolio.TotalValue()))
}

func TestUserPatch_IsEmpty(t *testing.T) {
	assert.True(t, UserPatch{}.IsEmpty())

	rank := 3
	assert.False(t, UserPatch{Rank: &rank}.IsEmpty())
	assert.False(t, UserPatch{Titles: []string{}}.IsEmpty())
}

func TestInitialsFor(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		want        string
	}{
		{name: "two words", displayName: "Alex Morgan", want: "AM"},
		{name: "lowercase", displayName: "sam lee", want: "SL"},
		{name: "single word", displayName: "Jordan", want: "J"},
		{name: "three words keeps two", displayName: "Mary Jane Watson", want: "MJ"},
		{name: "empty", displayName: "  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InitialsFor(tt.displayName))
		})
	}
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, 1, LevelFor(-10))
	assert.Equal(t, 1, LevelFor(0))
	assert.Equal(t, 1, LevelFor(499))
	assert.Equal(t, 2, LevelFor(500))
	assert.Equal(t, 5, LevelFor(2250))
}

func TestUserState_AdvanceLesson(t *testing.T) {
	user := UserState{}

	assert.True(t, user.AdvanceLesson("Budgeting", 0))
	assert.True(t, user.AdvanceLesson("Budgeting", 2))
	assert.False(t, user.AdvanceLesson("Budgeting", 1))
	assert.False(t, user.AdvanceLesson("Budgeting", 2))

	assert.Equal(t, 2, user.LessonIndex("Budgeting"))
	assert.Equal(t, map[string]int{"Budgeting": 2}, user.LessonProgress)
}
