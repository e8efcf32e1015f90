package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places kept for monetary amounts
const MoneyPlaces = 2

// RoundMoney rounds an amount to cents, half away from zero
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ParsePrice parses a price written either as a plain number ("850", "850.00")
// or in display form with a currency symbol and grouping ("R850.00", "R 1,250.50").
func ParsePrice(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "R")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty price %q", s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %q", s)
	}
	return d, nil
}

// ParsePriceJSON parses a JSON price value that may be a number or a display string
func ParsePriceJSON(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, fmt.Errorf("missing price")
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, fmt.Errorf("invalid price: %w", err)
		}
		return ParsePrice(s)
	}

	return ParsePrice(string(raw))
}
