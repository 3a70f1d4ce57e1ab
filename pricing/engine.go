package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnknownCurrency is returned for a currency the pricebook has no conversion for
var ErrUnknownCurrency = errors.New("unknown currency")

// PricebookConfig represents the pricebook configuration structure
type PricebookConfig struct {
	Currency    string                `json:"currency"`
	Conversions map[string]Conversion `json:"conversions"`
}

// Conversion maps amounts of one currency into the catalog currency.
// Exact entries win over the rate; they pin prices that were rounded by hand.
type Conversion struct {
	Exact map[string]string `json:"exact"`
	Rate  string            `json:"rate"`
}

// DefaultConfig is used when no pricebook file exists: the MXN listing prices
// the storefront published before it went back to USD.
var DefaultConfig = PricebookConfig{
	Currency: "USD",
	Conversions: map[string]Conversion{
		"MXN": {
			Exact: map[string]string{
				"434.78": "25.99",
				"671.94": "39.99",
				"454.55": "26.99",
				"375.49": "21.99",
				"750.99": "44.99",
				"869.57": "51.99",
			},
			Rate: "0.0598",
		},
	},
}

// Engine converts listing prices into the catalog currency
type Engine struct {
	currency string
	exact    map[string]map[string]decimal.Decimal
	rates    map[string]decimal.Decimal
}

// NewEngine loads a pricebook from configPath, falling back to DefaultConfig
// when the file does not exist
func NewEngine(configPath string) (*Engine, error) {
	// Resolve config path
	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️  PricingEngine: %s not found, using built-in pricebook", configPath)
		return NewEngineFromConfig(DefaultConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pricebook: %w", err)
	}

	var config PricebookConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse pricebook: %w", err)
	}

	engine, err := NewEngineFromConfig(config)
	if err != nil {
		return nil, err
	}
	log.Printf("✓ PricingEngine: loaded pricebook from %s", configPath)
	return engine, nil
}

// NewEngineFromConfig validates config and builds an Engine
func NewEngineFromConfig(config PricebookConfig) (*Engine, error) {
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid pricebook: %w", err)
	}

	e := &Engine{
		currency: strings.ToUpper(config.Currency),
		exact:    make(map[string]map[string]decimal.Decimal),
		rates:    make(map[string]decimal.Decimal),
	}
	for currency, conv := range config.Conversions {
		currency = strings.ToUpper(currency)
		table := make(map[string]decimal.Decimal, len(conv.Exact))
		for from, to := range conv.Exact {
			fromAmount, err := decimal.NewFromString(from)
			if err != nil {
				return nil, fmt.Errorf("invalid pricebook amount %q for %s: %w", from, currency, err)
			}
			toAmount, err := decimal.NewFromString(to)
			if err != nil {
				return nil, fmt.Errorf("invalid pricebook amount %q for %s: %w", to, currency, err)
			}
			table[fromAmount.StringFixed(2)] = toAmount
		}
		e.exact[currency] = table
		if conv.Rate != "" {
			rate, err := decimal.NewFromString(conv.Rate)
			if err != nil {
				return nil, fmt.Errorf("invalid rate %q for %s: %w", conv.Rate, currency, err)
			}
			e.rates[currency] = rate
		}
	}
	return e, nil
}

func validateConfig(config *PricebookConfig) error {
	if config.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	for currency, conv := range config.Conversions {
		if len(conv.Exact) == 0 && conv.Rate == "" {
			return fmt.Errorf("conversion for %s needs exact amounts or a rate", currency)
		}
	}
	return nil
}

// Currency returns the catalog currency
func (e *Engine) Currency() string {
	return e.currency
}

// Convert maps an amount in currency to the catalog currency, rounded to cents
func (e *Engine) Convert(amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" || currency == e.currency {
		return amount, nil
	}
	if to, ok := e.exact[currency][amount.StringFixed(2)]; ok {
		return to, nil
	}
	if rate, ok := e.rates[currency]; ok {
		return amount.Mul(rate).Round(2), nil
	}
	return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, currency)
}

// SalePrice applies a sale percentage to a price, rounded to cents
func SalePrice(price decimal.Decimal, percentage int) decimal.Decimal {
	if percentage <= 0 {
		return price.Round(2)
	}
	if percentage >= 100 {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(100 - percentage))).Div(decimal.NewFromInt(100)).Round(2)
}
