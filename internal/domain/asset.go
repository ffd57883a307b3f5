package domain

import (
	"errors"
	"fmt"
	"strings"
)

// AssetClass represents one of the simulated investment categories of a portfolio
type AssetClass string

const (
	AssetClassStocks     AssetClass = "STOCKS"
	AssetClassETFs       AssetClass = "ETFS"
	AssetClassRealEstate AssetClass = "REAL_ESTATE"
	AssetClassBonds      AssetClass = "BONDS"
	AssetClassCrypto     AssetClass = "CRYPTO"
)

// ErrUnknownAssetClass is returned when an operation names an asset class the portfolio does not track
var ErrUnknownAssetClass = errors.New("unknown asset class")

// AssetClasses lists every tracked asset class in display order
func AssetClasses() []AssetClass {
	return []AssetClass{
		AssetClassStocks,
		AssetClassETFs,
		AssetClassRealEstate,
		AssetClassBonds,
		AssetClassCrypto,
	}
}

// Valid reports whether the asset class is one of the tracked classes
func (c AssetClass) Valid() bool {
	switch c {
	case AssetClassStocks, AssetClassETFs, AssetClassRealEstate, AssetClassBonds, AssetClassCrypto:
		return true
	}
	return false
}

// ParseAssetClass converts user-facing names ("stocks", "real estate", "realEstate") into an AssetClass
func ParseAssetClass(s string) (AssetClass, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	switch normalized {
	case "STOCKS", "STOCK":
		return AssetClassStocks, nil
	case "ETFS", "ETF":
		return AssetClassETFs, nil
	case "REAL_ESTATE", "REALESTATE":
		return AssetClassRealEstate, nil
	case "BONDS", "BOND":
		return AssetClassBonds, nil
	case "CRYPTO":
		return AssetClassCrypto, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownAssetClass, s)
}
