package translation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/arabizi-backend/internal/domain"
)

// MsgNoText is the validation message for missing or blank text.
const MsgNoText = "No text provided"

// TranslateInput holds the text to process.
type TranslateInput struct {
	Text string
}

// Validate checks the text against the configured rune limit.
func (i *TranslateInput) Validate(maxRunes int) error {
	if strings.TrimSpace(i.Text) == "" {
		return domain.NewValidationError("text", MsgNoText)
	}
	if maxRunes > 0 && utf8.RuneCountInString(i.Text) > maxRunes {
		return domain.NewValidationError("text", fmt.Sprintf("too long (max %d characters)", maxRunes))
	}
	return nil
}
