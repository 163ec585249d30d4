package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	accepted := []string{
		"+7 912 345-67-89",
		"8 (912) 345-67-89",
		"89123456789",
		"9123456789",
		"+7-912-345-67-89",
	}
	for _, phone := range accepted {
		assert.True(t, Phone(phone), "expected %q to be accepted", phone)
	}

	rejected := []string{
		"123456",
		"+1 555 123 4567",
		"",
		"not a phone",
		"8 (012) 345-67-89",
	}
	for _, phone := range rejected {
		assert.False(t, Phone(phone), "expected %q to be rejected", phone)
	}
}

func TestPhoneTrimsWhitespace(t *testing.T) {
	assert.True(t, Phone("  89123456789  "))
}

func TestTitle(t *testing.T) {
	assert.True(t, Title("No internet"))
	assert.True(t, Title(strings.Repeat("a", MaxTitleLen)), "exactly max length is accepted")
	assert.False(t, Title(strings.Repeat("a", MaxTitleLen+1)))
	assert.False(t, Title(""))
	assert.False(t, Title("   "))
}

func TestTitleCountsRunesNotBytes(t *testing.T) {
	// 200 two-byte characters exceed 200 bytes but not 200 characters.
	assert.True(t, Title(strings.Repeat("ы", MaxTitleLen)))
}

func TestDescription(t *testing.T) {
	assert.True(t, Description(strings.Repeat("a", MinDescriptionLen)), "exactly min length is accepted")
	assert.False(t, Description(strings.Repeat("a", MinDescriptionLen-1)))
	assert.True(t, Description("Office wifi down since morning"))
	assert.False(t, Description("short    "), "trailing spaces do not count")
}
