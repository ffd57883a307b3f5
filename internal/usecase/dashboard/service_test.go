package dashboard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/finquest-backend/internal/adapter/memory"
	"github.com/simaogato/finquest-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNetWorth(t *testing.T) {
	store := memory.NewUserStore(zerolog.Nop())
	store.SetCurrent(domain.UserState{
		ID:          uuid.New(),
		DisplayName: "Alex Morgan",
		Cash:        decimal.NewFromInt(250),
		Portfolio: domain.NewPortfolioValuation(domain.Breakdown{
			domain.AssetClassStocks:     decimal.NewFromInt(5200),
			domain.AssetClassETFs:       decimal.NewFromInt(3750),
			domain.AssetClassRealEstate: decimal.NewFromInt(3600),
			domain.AssetClassBonds:      decimal.NewFromInt(2000),
			domain.AssetClassCrypto:     decimal.NewFromInt(1200),
		}),
	})
	service := NewDashboardService(store)

	result, err := service.GetNetWorth(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(16000).Equal(result.Total))
	assert.True(t, decimal.NewFromInt(250).Equal(result.Cash))
	assert.True(t, decimal.NewFromInt(15750).Equal(result.Invested))
	assert.True(t, decimal.RequireFromString("233.1").Equal(result.Daily.Amount))
	assert.True(t, decimal.NewFromInt(-189).Equal(result.Weekly.Amount))
}

func TestGetNetWorth_NoUser(t *testing.T) {
	service := NewDashboardService(memory.NewUserStore(zerolog.Nop()))

	result, err := service.GetNetWorth(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoUser)
	assert.Nil(t, result)
}

func TestGetNetWorth_NoPortfolio(t *testing.T) {
	store := memory.NewUserStore(zerolog.Nop())
	store.SetCurrent(domain.UserState{ID: uuid.New(), DisplayName: "Alex", Cash: decimal.NewFromInt(5)})
	service := NewDashboardService(store)

	result, err := service.GetNetWorth(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(5).Equal(result.Total))
	assert.True(t, result.Invested.IsZero())
	assert.True(t, result.Daily.IsPositive)
}

func TestGetProfileCard(t *testing.T) {
	store := memory.NewUserStore(zerolog.Nop())
	service := NewDashboardService(store)

	guest := service.GetProfileCard()
	assert.Equal(t, "Guest", guest.DisplayName)
	assert.Equal(t, 1, guest.Level)

	store.SetCurrent(domain.UserState{
		ID:          uuid.New(),
		DisplayName: "Sam Lee",
		Level:       3,
		XP:          1200,
		Streak:      7,
		Rank:        4,
		RankChange:  "+2",
		Portfolio:   domain.NewPortfolioValuation(nil),
	})

	card := service.GetProfileCard()
	assert.Equal(t, ProfileCard{
		DisplayName: "Sam Lee",
		Initials:    "SL",
		Level:       3,
		XP:          1200,
		Streak:      7,
		Rank:        4,
		RankChange:  "+2",
	}, card)
}

func TestGetNetWorth_CanceledContext(t *testing.T) {
	store := memory.NewUserStore(zerolog.Nop())
	store.SetCurrent(domain.UserState{ID: uuid.New(), DisplayName: "Alex", Cash: decimal.NewFromInt(5)})
	service := NewDashboardService(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := service.GetNetWorth(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}
