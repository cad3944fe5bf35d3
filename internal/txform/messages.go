package txform

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	msgInsufficientBalance = "insufficient balance"
	msgAmountTooSmall      = "amount must be at least 1"
	msgEnterAmount         = "Enter amount"
	msgSend                = "Send"
)

// supported is ordered so that index 0 is the fallback.
var supported = []language.Tag{language.English, language.Arabic}

var translations = map[language.Tag]map[string]string{
	language.English: {
		msgInsufficientBalance: "insufficient balance",
		msgAmountTooSmall:      "amount must be at least 1",
		msgEnterAmount:         "Enter amount",
		msgSend:                "Send",
	},
	language.Arabic: {
		msgInsufficientBalance: "الرصيد غير كافٍ",
		msgAmountTooSmall:      "يجب ألا يقل المبلغ عن 1",
		msgEnterAmount:         "أدخل المبلغ",
		msgSend:                "إرسال",
	},
}

// Localizer renders the form's user-facing strings for one locale.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer returns a Localizer for locale (a BCP 47 tag such as "en" or
// "ar-EG"). Unknown or malformed locales fall back to English.
func NewLocalizer(locale string) *Localizer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, text := range msgs {
			// SetString only fails for malformed messages; ours are literals.
			_ = b.SetString(tag, key, text)
		}
	}

	tag := supported[0]
	if parsed, err := language.Parse(locale); err == nil {
		_, idx, conf := language.NewMatcher(supported).Match(parsed)
		if conf != language.No {
			tag = supported[idx]
		}
	}

	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b)),
	}
}

// Tag returns the resolved language.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// InsufficientBalance is the message shown when a withdrawal exceeds the balance.
func (l *Localizer) InsufficientBalance() string {
	return l.printer.Sprintf(msgInsufficientBalance)
}

// AmountTooSmall describes a disabled submit for non-interactive callers.
func (l *Localizer) AmountTooSmall() string {
	return l.printer.Sprintf(msgAmountTooSmall)
}

// Placeholder is the amount field placeholder.
func (l *Localizer) Placeholder() string {
	return l.printer.Sprintf(msgEnterAmount)
}

// Send is the submit button caption.
func (l *Localizer) Send() string {
	return l.printer.Sprintf(msgSend)
}
