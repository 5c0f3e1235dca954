// Package summary renders the human-readable text of a coffee order.
package summary

import (
	"strings"

	"github.com/Lixing-Zhang/just-java/internal/locale"
)

// LineCount is the number of lines every summary has.
const LineCount = 6

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\u2028", " ", "\u2029", " ")

// Formatter composes order summaries for one locale.
type Formatter struct {
	loc *locale.Localizer
}

// NewFormatter creates a Formatter rendering through loc.
func NewFormatter(loc *locale.Localizer) *Formatter {
	return &Formatter{loc: loc}
}

// CreateOrderSummary returns the newline-joined summary: name, whipped cream,
// chocolate, quantity, total price and a closing thank-you line.
// Inputs are not validated; line breaks in name are replaced by spaces.
func (f *Formatter) CreateOrderSummary(name string, price int, hasWhippedCream, hasChocolate bool, quantity int) string {
	lines := [LineCount]string{
		f.loc.Text(locale.KeySummaryName, lineBreaks.Replace(name)),
		f.loc.Text(locale.KeySummaryWhippedCream, hasWhippedCream),
		f.loc.Text(locale.KeySummaryChocolate, hasChocolate),
		f.loc.Text(locale.KeySummaryQuantity, quantity),
		f.loc.Text(locale.KeySummaryPrice, f.loc.FormatPrice(price)),
		f.loc.Text(locale.KeyThankYou),
	}
	return strings.Join(lines[:], "\n")
}

// EmailSubject returns the subject line for the order mail.
func (f *Formatter) EmailSubject(name string) string {
	return f.loc.Text(locale.KeyEmailSubject, lineBreaks.Replace(name))
}
