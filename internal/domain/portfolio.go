package domain

import (
	"sync"

	"github.com/shopspring/decimal"
)

// HistoryCapacity is the number of total-value samples kept for trend display
const HistoryCapacity = 8

var hundred = decimal.NewFromInt(100)

// Default daily change percentages applied when a portfolio is constructed without overrides
var (
	DefaultStocksChangePercent     = decimal.RequireFromString("3.2")
	DefaultETFsChangePercent       = decimal.RequireFromString("1.8")
	DefaultRealEstateChangePercent = decimal.RequireFromString("1.2")
	DefaultBondsChangePercent      = decimal.RequireFromString("0.5")
	DefaultCryptoChangePercent     = decimal.RequireFromString("-4.5")
	DefaultWeeklyChangePercent     = decimal.RequireFromString("-1.2")
)

// DefaultHistory returns the trend samples a new portfolio starts with, oldest first
func DefaultHistory() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.NewFromInt(12000),
		decimal.NewFromInt(12500),
		decimal.NewFromInt(13200),
		decimal.NewFromInt(12800),
		decimal.NewFromInt(14100),
		decimal.NewFromInt(14800),
		decimal.NewFromInt(15200),
		decimal.NewFromInt(15750),
	}
}

// ChangeMetrics is a percent/amount/direction tuple for a daily or weekly change
type ChangeMetrics struct {
	Percent    decimal.Decimal
	Amount     decimal.Decimal
	IsPositive bool // Percent >= 0; a flat day counts as positive
}

// AssetPerformance is the read-only view of a single asset class position
type AssetPerformance struct {
	AssetClass AssetClass
	Value      decimal.Decimal
	Change     ChangeMetrics
}

// Breakdown maps each asset class to its current value
type Breakdown map[AssetClass]decimal.Decimal

// PortfolioSummary is the read-only projection screens render from
type PortfolioSummary struct {
	TotalValue decimal.Decimal
	Daily      ChangeMetrics
	Weekly     ChangeMetrics
	Breakdown  Breakdown
	Assets     []AssetPerformance // In AssetClasses() order
}

// ChangeAmount converts a change percentage into a currency delta: value * percent / 100
func ChangeAmount(value, percent decimal.Decimal) decimal.Decimal {
	return value.Mul(percent).Div(hundred)
}

// ChangePercent derives the percentage an amount represents of a total.
// A zero total yields 0 instead of dividing by zero.
func ChangePercent(amount, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return amount.Div(total).Mul(hundred)
}

func newChangeMetrics(percent, amount decimal.Decimal) ChangeMetrics {
	return ChangeMetrics{
		Percent:    percent,
		Amount:     amount,
		IsPositive: !percent.IsNegative(),
	}
}

type assetPosition struct {
	value         decimal.Decimal
	changePercent decimal.Decimal
	change        ChangeMetrics
}

func (p *assetPosition) recompute() {
	p.change = newChangeMetrics(p.changePercent, ChangeAmount(p.value, p.changePercent))
}

// PortfolioValuation holds a user's simulated holdings per asset class and keeps
// every derived total consistent with them.
// State is only reachable through methods; each mutation recomputes all aggregates
// under the lock so readers never observe a half-updated portfolio.
type PortfolioValuation struct {
	mu sync.RWMutex

	assets        map[AssetClass]*assetPosition
	weeklyPercent decimal.Decimal

	totalValue decimal.Decimal
	daily      ChangeMetrics
	weekly     ChangeMetrics

	history []decimal.Decimal
}

type portfolioConfig struct {
	changePercents map[AssetClass]decimal.Decimal
	weeklyPercent  decimal.Decimal
	history        []decimal.Decimal
}

// PortfolioOption customizes a portfolio at construction time
type PortfolioOption func(*portfolioConfig)

// WithChangePercent overrides the daily change percentage of one asset class.
// Unknown classes are ignored.
func WithChangePercent(class AssetClass, percent decimal.Decimal) PortfolioOption {
	return func(c *portfolioConfig) {
		if class.Valid() {
			c.changePercents[class] = percent
		}
	}
}

// WithWeeklyChangePercent overrides the aggregate weekly change percentage
func WithWeeklyChangePercent(percent decimal.Decimal) PortfolioOption {
	return func(c *portfolioConfig) {
		c.weeklyPercent = percent
	}
}

// WithHistory seeds the trend buffer. Only the newest HistoryCapacity samples are kept.
func WithHistory(samples []decimal.Decimal) PortfolioOption {
	return func(c *portfolioConfig) {
		c.history = append([]decimal.Decimal(nil), samples...)
	}
}

// NewPortfolioValuation creates a portfolio from per-class values.
// Missing classes start at 0 and unknown classes are ignored. Negative values are
// accepted as given; callers clamp when they need to.
func NewPortfolioValuation(values Breakdown, opts ...PortfolioOption) *PortfolioValuation {
	cfg := &portfolioConfig{
		changePercents: map[AssetClass]decimal.Decimal{
			AssetClassStocks:     DefaultStocksChangePercent,
			AssetClassETFs:       DefaultETFsChangePercent,
			AssetClassRealEstate: DefaultRealEstateChangePercent,
			AssetClassBonds:      DefaultBondsChangePercent,
			AssetClassCrypto:     DefaultCryptoChangePercent,
		},
		weeklyPercent: DefaultWeeklyChangePercent,
		history:       DefaultHistory(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	p := &PortfolioValuation{
		assets:        make(map[AssetClass]*assetPosition, len(AssetClasses())),
		weeklyPercent: cfg.weeklyPercent,
	}

	for _, class := range AssetClasses() {
		position := &assetPosition{
			value:         values[class], // zero value of decimal.Decimal is 0
			changePercent: cfg.changePercents[class],
		}
		position.recompute()
		p.assets[class] = position
	}

	for _, sample := range cfg.history {
		p.appendHistory(sample)
	}

	p.recomputeAggregates()

	return p
}

// UpdateAssetValue replaces the value of one asset class, keeping its current change percentage
func (p *PortfolioValuation) UpdateAssetValue(class AssetClass, value decimal.Decimal) error {
	return p.update(class, value, nil)
}

// UpdateAssetValueWithChange replaces the value and the daily change percentage of one asset class
func (p *PortfolioValuation) UpdateAssetValueWithChange(class AssetClass, value, changePercent decimal.Decimal) error {
	return p.update(class, value, &changePercent)
}

func (p *PortfolioValuation) update(class AssetClass, value decimal.Decimal, changePercent *decimal.Decimal) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	position, ok := p.assets[class]
	if !ok {
		return ErrUnknownAssetClass
	}

	position.value = value
	if changePercent != nil {
		position.changePercent = *changePercent
	}
	position.recompute()

	p.recomputeAggregates()

	return nil
}

// RecordHistorySample appends a total-value sample, evicting the oldest once the buffer is full
func (p *PortfolioValuation) RecordHistorySample(value decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.appendHistory(value)
}

// appendHistory must be called with the write lock held (or during construction)
func (p *PortfolioValuation) appendHistory(value decimal.Decimal) {
	p.history = append(p.history, value)
	if overflow := len(p.history) - HistoryCapacity; overflow > 0 {
		p.history = append(p.history[:0:0], p.history[overflow:]...)
	}
}

// recomputeAggregates must be called with the write lock held (or during construction).
// The aggregate percent is derived from the summed amounts, weighting each class by its value.
func (p *PortfolioValuation) recomputeAggregates() {
	total := decimal.Zero
	dailyAmount := decimal.Zero
	for _, position := range p.assets {
		total = total.Add(position.value)
		dailyAmount = dailyAmount.Add(position.change.Amount)
	}

	p.totalValue = total
	p.daily = newChangeMetrics(ChangePercent(dailyAmount, total), dailyAmount)
	p.weekly = newChangeMetrics(p.weeklyPercent, ChangeAmount(total, p.weeklyPercent))
}

// TotalValue returns the sum of all asset class values
func (p *PortfolioValuation) TotalValue() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.totalValue
}

// Value returns the current value of one asset class, or 0 for an unknown class
func (p *PortfolioValuation) Value(class AssetClass) decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if position, ok := p.assets[class]; ok {
		return position.value
	}
	return decimal.Zero
}

// Asset returns the performance view of one asset class
func (p *PortfolioValuation) Asset(class AssetClass) (AssetPerformance, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	position, ok := p.assets[class]
	if !ok {
		return AssetPerformance{}, false
	}
	return AssetPerformance{AssetClass: class, Value: position.value, Change: position.change}, true
}

// Breakdown returns the current value of every asset class
func (p *PortfolioValuation) Breakdown() Breakdown {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.breakdown()
}

func (p *PortfolioValuation) breakdown() Breakdown {
	out := make(Breakdown, len(p.assets))
	for class, position := range p.assets {
		out[class] = position.value
	}
	return out
}

// DailyChange returns the aggregate daily change across all asset classes
func (p *PortfolioValuation) DailyChange() ChangeMetrics {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.daily
}

// WeeklyChange returns the aggregate weekly change
func (p *PortfolioValuation) WeeklyChange() ChangeMetrics {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.weekly
}

// History returns a copy of the trend buffer, oldest sample first
func (p *PortfolioValuation) History() []decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return append([]decimal.Decimal(nil), p.history...)
}

// Summary returns a consistent snapshot of totals, changes and the per-class breakdown
func (p *PortfolioValuation) Summary() PortfolioSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()

	assets := make([]AssetPerformance, 0, len(p.assets))
	for _, class := range AssetClasses() {
		position := p.assets[class]
		assets = append(assets, AssetPerformance{
			AssetClass: class,
			Value:      position.value,
			Change:     position.change,
		})
	}

	return PortfolioSummary{
		TotalValue: p.totalValue,
		Daily:      p.daily,
		Weekly:     p.weekly,
		Breakdown:  p.breakdown(),
		Assets:     assets,
	}
}
