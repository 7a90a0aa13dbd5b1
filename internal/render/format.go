package render

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"

	"github.com/ndewijer/pnl-dashboard/internal/model"
)

// Money formats an amount in the currency's display format, e.g.
// "1,500,000 ₫" for VND. Unknown currency codes fall back to a plain number
// and non-finite amounts render as "n/a".
func Money(amount float64, currency string) string {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return "n/a"
	}
	cur := money.GetCurrency(currency)
	if cur == nil {
		return strconv.FormatFloat(amount, 'f', 2, 64) + " " + currency
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// SignedMoney is Money with an explicit "+" on positive amounts.
func SignedMoney(amount float64, currency string) string {
	s := Money(amount, currency)
	if amount > 0 && !math.IsInf(amount, 1) {
		return "+" + s
	}
	return s
}

// Percent formats a signed percentage with two decimals.
func Percent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// RatioPercent formats a possibly undefined percentage.
func RatioPercent(r model.Ratio) string {
	if !r.Defined() {
		return "n/a"
	}
	return Percent(r.Float64())
}

// RatioPlain formats a possibly undefined ratio as "1 : x.xx".
func RatioPlain(r model.Ratio) string {
	if !r.Defined() {
		return "n/a"
	}
	return fmt.Sprintf("1 : %.2f", r.Float64())
}

// Note renders a free-text note as markdown. Raw HTML in the note is
// dropped by goldmark's default renderer.
func Note(note string) template.HTML {
	if note == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(note), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(note))
	}
	//nolint:gosec // G203: goldmark output with unsafe HTML disabled.
	return template.HTML(buf.String())
}
