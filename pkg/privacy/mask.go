package privacy

import "regexp"

// Masking rules are applied strictly in order. Broader grouped patterns run
// before the generic digit-run rule because the categories overlap: a
// 16-digit card number also matches the 8+ digit ID pattern, and a grouped
// 12-digit number matches both the My Number and ID patterns. Placeholders
// contain no digits or '@', so masking already-masked text is a no-op.
var maskRules = []struct {
	pattern     *regexp.Regexp
	placeholder string
}{
	// Email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[EMAIL]"},
	// International phone numbers
	{regexp.MustCompile(`\+\d{1,3}[-\s]?\d{1,4}[-\s]?\d{1,4}[-\s]?\d{3,4}`), "[PHONE]"},
	// Japanese phone numbers (leading zero, various groupings)
	{regexp.MustCompile(`\b0\d{1,4}[-\s]?\d{1,4}[-\s]?\d{3,4}\b`), "[PHONE]"},
	// Credit card numbers (16 digits, optional separators)
	{regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`), "[CREDIT_CARD]"},
	// My Number (12 digits in groups of four; separators required so a bare
	// 12-digit run falls through to the generic ID rule)
	{regexp.MustCompile(`\b\d{4}[-\s]\d{4}[-\s]\d{4}\b`), "[MY_NUMBER]"},
	// Japanese postal codes
	{regexp.MustCompile(`\b\d{3}-?\d{4}\b`), "[POSTAL]"},
	// ID-like numbers (8+ consecutive digits)
	{regexp.MustCompile(`\b\d{8,}\b`), "[ID_NUMBER]"},
}

// Mask replaces personally identifiable substrings with category
// placeholders. Empty input is returned unchanged. Mask is idempotent.
func Mask(text string) string {
	if text == "" {
		return text
	}
	for _, rule := range maskRules {
		text = rule.pattern.ReplaceAllString(text, rule.placeholder)
	}
	return text
}
