package chat

import (
	"strings"

	"vetchat/utils"
)

// KeywordIntentPolicy detects booking intent by case-insensitive substring
// containment against a fixed phrase set. No tokenization.
type KeywordIntentPolicy struct {
	Keywords []string
}

// NewKeywordIntentPolicy returns the policy with the standard phrase set.
func NewKeywordIntentPolicy() *KeywordIntentPolicy {
	return &KeywordIntentPolicy{Keywords: utils.BookingKeywords}
}

func (p *KeywordIntentPolicy) LooksLikeBookingIntent(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range p.Keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
