package trading

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/finquest-backend/internal/domain"
)

var (
	// ErrNoUser is returned when a trade is requested while no user is loaded
	ErrNoUser = domain.ErrNoUser
	// ErrInvalidAmount is returned for zero or negative trade amounts
	ErrInvalidAmount = errors.New("trade amount must be positive")
	// ErrInsufficientCash is returned when a buy costs more than the user's cash
	ErrInsufficientCash = errors.New("insufficient cash")
	// ErrNothingToSell is returned when selling from an empty position
	ErrNothingToSell = errors.New("nothing to sell")
)

// TradeResult describes the state after a buy or sell
type TradeResult struct {
	AssetClass    domain.AssetClass
	Amount        decimal.Decimal // Actually traded; a sell may be clamped to the held value
	NewAssetValue decimal.Decimal
	Cash          decimal.Decimal
	TotalValue    decimal.Decimal
}

// TradingService handles simulated buy/sell operations on the user's portfolio
type TradingService struct {
	UserStore domain.UserStore
	log       zerolog.Logger
}

// NewTradingService creates a new TradingService instance
func NewTradingService(userStore domain.UserStore, log zerolog.Logger) *TradingService {
	return &TradingService{
		UserStore: userStore,
		log:       log.With().Str("service", "trading").Logger(),
	}
}

// Buy moves cash into an asset class
// Logic:
//   - The cash check, asset increase and cash debit run as one store update
//   - Cash shrinks by amount; the asset value grows by amount
//   - Subscribers get a single notification carrying the re-asserted portfolio
func (s *TradingService) Buy(ctx context.Context, class domain.AssetClass, amount decimal.Decimal) (*TradeResult, error) {
	if err := validateTrade(ctx, class, amount); err != nil {
		return nil, err
	}

	result := &TradeResult{AssetClass: class, Amount: amount}
	state, err := s.UserStore.Update(func(user *domain.UserState) error {
		if user.Portfolio == nil {
			return ErrNoUser
		}
		if user.Cash.LessThan(amount) {
			result.Cash = user.Cash
			return ErrInsufficientCash
		}

		newValue := user.Portfolio.Value(class).Add(amount)
		if err := user.Portfolio.UpdateAssetValue(class, newValue); err != nil {
			return err
		}
		user.Cash = user.Cash.Sub(amount)

		result.NewAssetValue = newValue
		result.TotalValue = user.Portfolio.TotalValue()
		return nil
	})
	if errors.Is(err, ErrInsufficientCash) {
		s.log.Info().
			Str("asset_class", string(class)).
			Str("amount", amount.String()).
			Str("cash", result.Cash.String()).
			Msg("buy rejected: insufficient cash")
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	result.Cash = state.Cash
	s.logTrade(result)
	return result, nil
}

// Sell moves value out of an asset class back into cash
// The sold amount is clamped to the held value, so a position never goes negative
func (s *TradingService) Sell(ctx context.Context, class domain.AssetClass, amount decimal.Decimal) (*TradeResult, error) {
	if err := validateTrade(ctx, class, amount); err != nil {
		return nil, err
	}

	result := &TradeResult{AssetClass: class}
	state, err := s.UserStore.Update(func(user *domain.UserState) error {
		if user.Portfolio == nil {
			return ErrNoUser
		}
		held := user.Portfolio.Value(class)
		if held.LessThanOrEqual(decimal.Zero) {
			return ErrNothingToSell
		}

		sold := decimal.Min(amount, held)
		newValue := held.Sub(sold)
		if err := user.Portfolio.UpdateAssetValue(class, newValue); err != nil {
			return err
		}
		user.Cash = user.Cash.Add(sold)

		result.Amount = sold
		result.NewAssetValue = newValue
		result.TotalValue = user.Portfolio.TotalValue()
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Cash = state.Cash
	s.logTrade(result)
	return result, nil
}

func validateTrade(ctx context.Context, class domain.AssetClass, amount decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !class.Valid() {
		return domain.ErrUnknownAssetClass
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

func (s *TradingService) logTrade(result *TradeResult) {
	s.log.Debug().
		Str("asset_class", string(result.AssetClass)).
		Str("amount", result.Amount.String()).
		Str("asset_value", result.NewAssetValue.String()).
		Str("total_value", result.TotalValue.String()).
		Str("cash", result.Cash.String()).
		Msg("trade applied")
}
