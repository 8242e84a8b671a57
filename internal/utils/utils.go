package utils

import "regexp"

var nonDigit = regexp.MustCompile(`\D`)

// IsPasswordValid enforces password policy (≥8 chars, not entirely numeric)
func IsPasswordValid(p string) bool {
	if len(p) < 8 {
		return false
	}
	return nonDigit.MatchString(p)
}
