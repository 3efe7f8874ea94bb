// Package format holds the display-string formatters for the fixed
// id-ID locale used throughout the engine: Rupiah currency, markup
// escaping, and the two timestamp shapes (display and filename).
package format

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/wargadata-dev/warga-store/pkg/schema"
)

// nbsp separates the currency symbol from the grouped digits, matching
// the id-ID currency convention.
const nbsp = " "

const (
	// displayLayout is the id-ID date-and-time convention: day and
	// month without leading zeros, dots between time components.
	displayLayout = "2/1/2006, 15.04.05"
	// fileLayout is the sortable compact token used in export filenames.
	fileLayout = "20060102_1504"
)

var printer = message.NewPrinter(language.Indonesian)

// Currency renders whole Rupiah with locale grouping and no decimal
// digits, e.g. 5000000 -> "Rp 5.000.000". The AmountNaN sentinel
// renders as "Rp NaN" rather than being rejected.
func Currency(amount int64) string {
	if amount == schema.AmountNaN {
		return "Rp" + nbsp + "NaN"
	}
	if amount < 0 {
		return "-Rp" + nbsp + printer.Sprintf("%v", number.Decimal(-amount))
	}
	return "Rp" + nbsp + printer.Sprintf("%v", number.Decimal(amount))
}

var markupReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeMarkup replaces the five markup-sensitive characters with
// their named entities. Applied to free-text fields (name, address)
// before they are embedded in HTML; never to digit-only or
// pre-formatted values.
func EscapeMarkup(text string) string {
	return markupReplacer.Replace(text)
}

// Timestamp formats t per the id-ID display convention.
func Timestamp(t time.Time) string {
	return t.Format(displayLayout)
}

// FileTimestamp produces the YYYYMMDD_HHMM token for export filenames.
func FileTimestamp(t time.Time) string {
	return t.Format(fileLayout)
}
