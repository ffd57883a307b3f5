package dashboard

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/simaogato/finquest-backend/internal/domain"
)

// NetWorthResult represents the calculated net worth
type NetWorthResult struct {
	Total    decimal.Decimal
	Cash     decimal.Decimal
	Invested decimal.Decimal
	Daily    domain.ChangeMetrics // Portfolio daily change; cash does not move
	Weekly   domain.ChangeMetrics
}

// ProfileCard is the header data screens show for the current user
type ProfileCard struct {
	DisplayName string
	Initials    string
	Level       int
	XP          int
	Streak      int
	Rank        int
	RankChange  string
}

// DashboardService handles dashboard-related read operations
type DashboardService struct {
	UserStore domain.UserStore
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(userStore domain.UserStore) *DashboardService {
	return &DashboardService{
		UserStore: userStore,
	}
}

// GetNetWorth calculates the total net worth
// Logic:
//   - Cash: the user's coin balance
//   - Invested: the portfolio total value
//   - Total: Cash + Invested
//
// Returns domain.ErrNoUser when no user is loaded so screens can render placeholders
func (s *DashboardService) GetNetWorth(ctx context.Context) (*NetWorthResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, ok := s.UserStore.Current()
	if !ok {
		return nil, domain.ErrNoUser
	}

	invested := decimal.Zero
	var daily, weekly domain.ChangeMetrics
	if user.Portfolio != nil {
		summary := user.Portfolio.Summary()
		invested = summary.TotalValue
		daily = summary.Daily
		weekly = summary.Weekly
	} else {
		daily = domain.ChangeMetrics{IsPositive: true}
		weekly = domain.ChangeMetrics{IsPositive: true}
	}

	return &NetWorthResult{
		Total:    user.Cash.Add(invested),
		Cash:     user.Cash,
		Invested: invested,
		Daily:    daily,
		Weekly:   weekly,
	}, nil
}

// GetProfileCard returns the header data for the current user
// Without a user it returns the guest placeholder instead of failing
func (s *DashboardService) GetProfileCard() ProfileCard {
	user, ok := s.UserStore.Current()
	if !ok {
		return ProfileCard{DisplayName: "Guest", Initials: "?", Level: 1}
	}

	initials := user.Initials
	if initials == "" {
		initials = domain.InitialsFor(user.DisplayName)
	}

	return ProfileCard{
		DisplayName: user.DisplayName,
		Initials:    initials,
		Level:       user.Level,
		XP:          user.XP,
		Streak:      user.Streak,
		Rank:        user.Rank,
		RankChange:  user.RankChange,
	}
}
