// Package moneyfmt renders signed minor-unit amounts as display strings.
//
// The canonical algorithm is pure digit-string manipulation on the amount's
// exact base-10 representation, which stays correct at any magnitude. A
// locale-aware rendering via go-money exists on top of it, but go-money's
// formatter takes int64, so amounts outside int64 (or instruments go-money
// does not know) always use the exact fallback instead.
package moneyfmt

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Decimal returns the exact decimal representation of an integer minor-unit
// amount: the digit string padded with leading zeros until it is longer than
// minorUnit, then split into integer and fractional parts minorUnit digits
// from the right. The sign applies to the whole string.
//
// Decimal(12345, 2) == "123.45"; Decimal(-6789, 2) == "-67.89";
// Decimal(5, 2) == "0.05"; Decimal(42, 0) == "42".
//
// minorUnit < 0 is an unchecked precondition violation.
func Decimal(amountMinor decimal.Decimal, minorUnit int) string {
	digits := amountMinor.Abs().String()
	for len(digits) <= minorUnit {
		digits = "0" + digits
	}

	var b strings.Builder
	if amountMinor.Sign() < 0 {
		b.WriteByte('-')
	}
	b.WriteString(digits[:len(digits)-minorUnit])
	if minorUnit > 0 {
		b.WriteByte('.')
		b.WriteString(digits[len(digits)-minorUnit:])
	}
	return b.String()
}

// Display renders an amount for the given instrument. Currency instruments
// whose code go-money recognizes get locale-correct grouping and symbol
// placement; everything else (securities, unknown codes, fraction-digit
// mismatches, amounts beyond int64) renders as "{code} {decimal}". The
// fallback never fails and the locale formatter is never retried.
func Display(amountMinor decimal.Decimal, instrument domain.Instrument) string {
	if s, ok := localeDisplay(amountMinor, instrument); ok {
		return s
	}
	return instrument.Code + " " + Decimal(amountMinor, instrument.MinorUnit)
}

// ChangeDisplay renders an amount as a signed change: strictly positive
// values get a "+" prefix, negative values a "-", zero carries no sign. The
// sign always prefixes the whole rendering, so "-$67.89" and "-AAPL 1.0000"
// carry it in the same place.
func ChangeDisplay(amountMinor decimal.Decimal, instrument domain.Instrument) string {
	s := Display(amountMinor.Abs(), instrument)
	switch {
	case amountMinor.Sign() > 0:
		return "+" + s
	case amountMinor.Sign() < 0:
		return "-" + s
	}
	return s
}

// localeDisplay attempts the go-money rendering. It reports false whenever
// the exact fallback must be used instead. go-money's int64 amounts make
// this path lossy above int64, so out-of-range values are rejected here
// before any conversion happens.
func localeDisplay(amountMinor decimal.Decimal, instrument domain.Instrument) (string, bool) {
	if instrument.Kind != domain.KindCurrency {
		return "", false
	}
	currency := money.GetCurrency(instrument.Code)
	if currency == nil || currency.Fraction != instrument.MinorUnit {
		return "", false
	}
	if !amountMinor.IsInteger() {
		return "", false
	}
	bi := amountMinor.BigInt()
	if !bi.IsInt64() {
		return "", false
	}
	return money.New(bi.Int64(), instrument.Code).Display(), true
}
