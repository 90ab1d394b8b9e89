package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagEmoji(t *testing.T) {
	assert.Equal(t, "🇫🇷", FlagEmoji("France"))
	assert.Equal(t, "🇺🇸", FlagEmoji("United States"))
	assert.Equal(t, "🇬🇧", FlagEmoji("United Kingdom"))
	assert.Equal(t, "", FlagEmoji("Does not exist"))
	assert.Equal(t, "", FlagEmoji("Unknown (ZZ)"))
	assert.Equal(t, "", FlagEmoji("Unknown (FR)"))
	assert.Equal(t, "", FlagEmoji(""))
}

func TestFlagEmoji_TableIsWellFormed(t *testing.T) {
	assert.GreaterOrEqual(t, len(countryCodes), 140)
	for name, code := range countryCodes {
		assert.Len(t, code, 2, name)
		for _, r := range code {
			assert.True(t, r >= 'A' && r <= 'Z', "%s has code %s", name, code)
		}
	}
}
