// Package validate holds the pure input checks used by the creation wizard.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTitleLen is the inclusive upper bound on ticket titles.
	MaxTitleLen = 200
	// MinDescriptionLen is the inclusive lower bound on ticket descriptions.
	MinDescriptionLen = 10
)

// phonePattern accepts an optional Russian country prefix, a mobile-prefix
// 3-digit group and grouped digits, with spaces/dashes/parentheses allowed
// as separators.
var phonePattern = regexp.MustCompile(`^(\+7|8)?[\s\-]?\(?[489][0-9]{2}\)?[\s\-]?[0-9]{3}[\s\-]?[0-9]{2}[\s\-]?[0-9]{2}$`)

// Phone reports whether the string is an acceptable contact phone.
func Phone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// Title reports whether the string is an acceptable ticket title.
// Length is counted in characters, not bytes.
func Title(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && utf8.RuneCountInString(s) <= MaxTitleLen
}

// Description reports whether the string is an acceptable ticket description.
func Description(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinDescriptionLen
}
