// Package formatpkg provides locale-aware display formatting. It is a pure
// formatting service: nothing here touches or changes stored values.
package formatpkg

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency renders the amount with the currency symbol for the locale.
// Unknown locales fall back to English, unknown currency codes to a plain
// fixed-point string.
func Currency(amount decimal.Decimal, code, locale string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return amount.StringFixed(2) + " " + code
	}

	lang, err := language.Parse(locale)
	if err != nil {
		lang = language.English
	}

	value, _ := amount.Float64()
	p := message.NewPrinter(lang)

	return p.Sprint(currency.Symbol(unit.Amount(value)))
}

// StripSign removes a leading minus from an already formatted string. The
// outgoing summary is displayed sign-stripped while the underlying sum stays
// negative.
func StripSign(formatted string) string {
	return strings.TrimLeft(formatted, "-−")
}

// RelativeDate renders recent dates in words and older ones with a
// day-first absolute layout.
func RelativeDate(now, t time.Time) string {
	days := int(math.Round(math.Abs(now.Sub(t).Hours() / 24)))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	}

	return t.Format("02/01/2006")
}

// CountdownClock renders remaining ticks as a mm:ss label.
func CountdownClock(ticks int) string {
	if ticks < 0 {
		ticks = 0
	}

	return fmt.Sprintf("%02d:%02d", ticks/60, ticks%60)
}
