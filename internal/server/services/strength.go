package services

import "unicode"

// ScorePasswordStrength rates a stored secret value on a 0–100 scale.
// The score is advisory only, computed at create/update time and stored on
// the record so clients can show it without shipping the secret back through
// a scorer. It never influences whether a record is accepted.
//
// Scoring: length tiers (20 at 8 chars, +10 at 12, +10 at 16), 10 points per
// character class present (lower, upper, digit, other), +10 for mixed case,
// +10 for digits mixed with non-digits. Length counts characters, not bytes.
func ScorePasswordStrength(secret string) int {
	if secret == "" {
		return 0
	}

	var score, length int
	var hasLower, hasUpper, hasDigit, hasOther bool
	for _, r := range secret {
		length++
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasOther = true
		}
	}

	if length >= 8 {
		score += 20
	}
	if length >= 12 {
		score += 10
	}
	if length >= 16 {
		score += 10
	}

	for _, present := range []bool{hasLower, hasUpper, hasDigit, hasOther} {
		if present {
			score += 10
		}
	}

	if hasLower && hasUpper {
		score += 10
	}
	if hasDigit && (hasLower || hasUpper || hasOther) {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}
