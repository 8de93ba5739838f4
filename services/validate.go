package services

import (
	"regexp"
	"strings"
)

// Field rules mirror the backend's registration schema; checking here saves
// a doomed round-trip and gives a field-specific message.

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidRequired(s string) bool {
	return strings.TrimSpace(s) != ""
}

func ValidUsername(s string) bool {
	return len([]rune(strings.TrimSpace(s))) >= 3
}

func ValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

func ValidPassword(s string) bool {
	return len([]rune(s)) >= 6
}
