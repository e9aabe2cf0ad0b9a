// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"github.com/shopspring/decimal"

	"github.com/taibuivan/kryptotracker/internal/platform/validate"
)

// MsgInvalidNumber is shown once for every form with a malformed amount.
const MsgInvalidNumber = "Bitte korrekte Zahlenwerte eingeben. (Punkt statt Komma)"

// exchanges are the selectable exchanges of the import and API key forms.
var exchanges = []string{"Kraken", "Binance", "Coinbase", "Bitpanda"}

// numberField is one decimal input of a form.
type numberField struct {
	value  string
	target *decimal.Decimal
}

// parseNumbers reads every field into its target. Empty inputs are zero.
// The backend expects a dot as decimal separator, so "1,5" is rejected
// instead of guessed. A failure is reported once on validator.
func parseNumbers(validator *validate.Validator, fields ...numberField) {
	failed := false
	for _, field := range fields {
		if field.value == "" {
			*field.target = decimal.Zero
			continue
		}
		number, err := decimal.NewFromString(field.value)
		if err != nil {
			failed = true
			continue
		}
		*field.target = number
	}
	validator.Custom("amount", failed, MsgInvalidNumber)
}
