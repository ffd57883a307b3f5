package seeder

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/finquest-backend/internal/domain"
)

// SESSION_USER is the fixed ID of the synthetic user created at session start
var SESSION_USER = uuid.MustParse("00000000-0000-0000-0000-000000000101")

// SessionUser defines the starting values of the seeded user
type SessionUser struct {
	DisplayName string
	Cash        decimal.Decimal
	XP          int
	Holdings    domain.Breakdown
}

// DefaultHoldings is the starting portfolio of every new session
func DefaultHoldings() domain.Breakdown {
	return domain.Breakdown{
		domain.AssetClassStocks:     decimal.NewFromInt(5200),
		domain.AssetClassETFs:       decimal.NewFromInt(3750),
		domain.AssetClassRealEstate: decimal.NewFromInt(3600),
		domain.AssetClassBonds:      decimal.NewFromInt(2000),
		domain.AssetClassCrypto:     decimal.NewFromInt(1200),
	}
}

// SessionSeeder handles seeding of the session user
type SessionSeeder struct {
	store domain.UserStore
}

// NewSessionSeeder creates a new SessionSeeder instance
func NewSessionSeeder(store domain.UserStore) *SessionSeeder {
	return &SessionSeeder{
		store: store,
	}
}

// Seed ensures a user is loaded in the store
// If a user is already loaded, it is kept as is and returned
func (s *SessionSeeder) Seed(ctx context.Context, seed SessionUser) (domain.UserState, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserState{}, err
	}

	if current, ok := s.store.Current(); ok {
		return current, nil
	}

	holdings := seed.Holdings
	if holdings == nil {
		holdings = DefaultHoldings()
	}

	user := domain.UserState{
		ID:             SESSION_USER,
		DisplayName:    seed.DisplayName,
		Initials:       domain.InitialsFor(seed.DisplayName),
		XP:             seed.XP,
		Level:          domain.LevelFor(seed.XP),
		LessonProgress: map[string]int{},
		Cash:           seed.Cash,
		Portfolio:      domain.NewPortfolioValuation(holdings),
		Rank:           0, // Unranked until the first leaderboard refresh
		RankChange:     "0",
		BadgeIDs:       []string{},
		Titles:         []string{"Newcomer"},
	}

	// Validate before loading
	if err := user.Validate(); err != nil {
		return domain.UserState{}, err
	}

	s.store.SetCurrent(user)

	return user, nil
}
