// Package locale holds the user-facing strings of the order form and renders
// them, together with prices, for a configured language tag.
package locale

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	KeySummaryName         = "order_summary_name"
	KeySummaryWhippedCream = "order_summary_whipped_cream"
	KeySummaryChocolate    = "order_summary_chocolate"
	KeySummaryQuantity     = "order_summary_quantity"
	KeySummaryPrice        = "order_summary_price"
	KeyThankYou            = "thank_you"
	KeyEmailSubject        = "order_summary_email_subject"
	KeyTooManyCoffees      = "too_many_coffees"
	KeyTooFewCoffees       = "too_few_coffees"
	KeyNoMailHandler       = "no_mail_handler"
)

// DefaultTag is used when no locale is configured.
const DefaultTag = "en-US"

var english = map[string]string{
	KeySummaryName:         "Name: %s",
	KeySummaryWhippedCream: "Add whipped cream? %t",
	KeySummaryChocolate:    "Add chocolate? %t",
	KeySummaryQuantity:     "Quantity: %d",
	KeySummaryPrice:        "Total: %s",
	KeyThankYou:            "Thank you!",
	KeyEmailSubject:        "Just Java order for %s",
	KeyTooManyCoffees:      "You cannot have more than %d coffees",
	KeyTooFewCoffees:       "You cannot have less than %d coffee",
	KeyNoMailHandler:       "No app available to handle Intent",
}

// Localizer renders catalog strings and currency amounts for one language tag.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
	unit    currency.Unit
}

// New builds a Localizer for the BCP 47 tag. An empty tag selects DefaultTag.
func New(tag string) (*Localizer, error) {
	if tag == "" {
		tag = DefaultTag
	}

	t, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", tag, err)
	}

	// English is the only translation. It is registered under t as well so a
	// printer for t resolves it while keeping t's digit formatting.
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, lang := range messageTags(t) {
		for key, msg := range english {
			if err := b.SetString(lang, key, msg); err != nil {
				return nil, fmt.Errorf("register message %s for %s: %w", key, lang, err)
			}
		}
	}

	unit, conf := currency.FromTag(t)
	if conf == language.No {
		unit = currency.USD
	}

	return &Localizer{
		tag:     t,
		printer: message.NewPrinter(t, message.Catalog(b)),
		unit:    unit,
	}, nil
}

// messageTags lists the tags the English strings are registered under.
func messageTags(t language.Tag) []language.Tag {
	if t == language.English {
		return []language.Tag{language.English}
	}
	return []language.Tag{language.English, t}
}

// Tag returns the language tag the Localizer renders for.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// Currency returns the ISO 4217 unit prices are rendered in.
func (l *Localizer) Currency() currency.Unit {
	return l.unit
}

// Text renders the message registered under key with args substituted.
func (l *Localizer) Text(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// FormatPrice renders a whole-unit amount as a currency string, e.g. "$25.00".
func (l *Localizer) FormatPrice(amount int) string {
	scale, _ := currency.Standard.Rounding(l.unit)
	symbol := l.printer.Sprint(currency.Symbol(l.unit))
	digits := l.printer.Sprintf(fmt.Sprintf("%%.%df", scale), float64(amount))
	return symbol + digits
}
