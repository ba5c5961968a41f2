package mt940

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DebitOrCredit string

const (
	Debit  DebitOrCredit = "D"
	Credit DebitOrCredit = "C"
)

// ExtDebitOrCredit is the indicator of a statement line, which may also mark
// a reversal.
type ExtDebitOrCredit string

const (
	ExtDebit          ExtDebitOrCredit = "D"
	ExtCredit         ExtDebitOrCredit = "C"
	ExtReversalDebit  ExtDebitOrCredit = "RD"
	ExtReversalCredit ExtDebitOrCredit = "RC"
)

// parseAmount converts an amount with a comma decimal separator. Digits after
// the comma are optional.
func parseAmount(s string) (decimal.Decimal, error) {
	intPart, frac, ok := strings.Cut(s, ",")
	if !ok {
		return decimal.Zero, &AmountParseError{Amount: s, Reason: "no comma"}
	} else if strings.Contains(frac, ",") {
		return decimal.Zero, &AmountParseError{Amount: s, Reason: "too many commas"}
	} else if intPart == "" || !allDigits(intPart) || !allDigits(frac) {
		return decimal.Zero, &AmountParseError{Amount: s, Reason: "not a number"}
	}
	n, err := strconv.ParseInt(intPart+frac, 10, 64)
	if err != nil {
		return decimal.Zero, &AmountParseError{Amount: s, Reason: err.Error()}
	}
	return decimal.New(n, -int32(len(frac))), nil
}

// parseDate converts a YYMMDD date. The year is assumed to be 20YY.
func parseDate(s string) (time.Time, error) {
	if len(s) != 6 || !allDigits(s) {
		return time.Time{}, &DateParseError{Year: s}
	}
	year := "20" + s[:2]
	return makeDate(year, s[2:4], s[4:6])
}

// parseShortDate converts an MMDD date, borrowing the year from ref.
func parseShortDate(s string, ref time.Time) (time.Time, error) {
	if len(s) != 4 || !allDigits(s) {
		return time.Time{}, &DateParseError{Month: s}
	}
	return makeDate(strconv.Itoa(ref.Year()), s[:2], s[2:])
}

func makeDate(year, month, day string) (time.Time, error) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflowing values, e.g. Feb 30 becomes Mar 1.
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, &DateParseError{Year: year, Month: month, Day: day}
	}
	return t, nil
}
