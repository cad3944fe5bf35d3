package txform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestLocalizer(t *testing.T) {
	tests := []struct {
		locale  string
		wantTag language.Tag
		want    string
	}{
		{"en", language.English, "insufficient balance"},
		{"en-GB", language.English, "insufficient balance"},
		{"ar", language.Arabic, "الرصيد غير كافٍ"},
		{"ar-EG", language.Arabic, "الرصيد غير كافٍ"},
		{"", language.English, "insufficient balance"},
		{"not a tag!", language.English, "insufficient balance"},
		{"ja", language.English, "insufficient balance"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			l := NewLocalizer(tt.locale)
			assert.Equal(t, tt.wantTag, l.Tag())
			assert.Equal(t, tt.want, l.InsufficientBalance())
		})
	}
}

func TestLocalizerLabels(t *testing.T) {
	en := NewLocalizer("en")
	assert.Equal(t, "Enter amount", en.Placeholder())
	assert.Equal(t, "Send", en.Send())
	assert.Equal(t, "amount must be at least 1", en.AmountTooSmall())

	ar := NewLocalizer("ar")
	assert.Equal(t, "إرسال", ar.Send())
}
