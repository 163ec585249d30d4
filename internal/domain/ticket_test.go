package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		parsed, err := ParseCategory(string(c))
		assert.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
	_, err := ParseCategory("printer")
	assert.Error(t, err)
	_, err = ParseCategory("")
	assert.Error(t, err)
}

func TestParsePriority(t *testing.T) {
	for _, p := range Priorities() {
		parsed, err := ParsePriority(string(p))
		assert.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	_, err := ParsePriority("urgent")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		parsed, err := ParseStatus(string(s))
		assert.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseStatus("open")
	assert.Error(t, err)
}
