package money

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 code supported by the ledger.
type Currency string

const (
	EUR Currency = "EUR"
	ALL Currency = "ALL"
)

// Currencies lists every supported currency in display order.
var Currencies = []Currency{EUR, ALL}

// ParseCurrency normalises s and rejects codes the ledger does not carry.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}

	return c, nil
}

func (c Currency) Valid() bool {
	return c == EUR || c == ALL
}

// Or returns c when it is supported and fallback otherwise.
func (c Currency) Or(fallback Currency) Currency {
	if c.Valid() {
		return c
	}

	return fallback
}

// Symbol is the one-character display symbol.
func (c Currency) Symbol() string {
	switch c {
	case EUR:
		return "€"
	case ALL:
		return "L"
	}

	return string(c)
}

// Decimals is the number of fraction digits shown for amounts in c.
func (c Currency) Decimals() int {
	if c == EUR {
		return 2
	}

	return 0
}
