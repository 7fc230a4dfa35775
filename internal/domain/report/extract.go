package report

import (
	"regexp"
	"strconv"
	"strings"
)

// Defaults used when free-form report text does not yield a value.
const (
	DefaultExtractedIncome = 1000
	DefaultExtractedBadge  = "AI Entrepreneur"
)

var (
	incomePattern = regexp.MustCompile(`\$?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)
	badgePattern  = regexp.MustCompile(`(?i)"([^"]*(?:Builder|Hustler|Creator|Guide|Thinker|Explorer)[^"]*)"|The\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
)

// ExtractIncome takes the first amount found in text. It is a heuristic over
// model output: the first number wins even when it is not the income estimate.
func ExtractIncome(text string) int {
	m := incomePattern.FindString(text)
	if m == "" {
		return DefaultExtractedIncome
	}
	digits := strings.NewReplacer("$", "", ",", "").Replace(m)
	if dot := strings.IndexByte(digits, '.'); dot >= 0 {
		digits = digits[:dot]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return DefaultExtractedIncome
	}
	return n
}

// ExtractBadge looks for a quoted archetype name or a "The Something" phrase.
func ExtractBadge(text string) string {
	m := badgePattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultExtractedBadge
	}
	if m[1] != "" {
		return m[1]
	}
	if m[2] != "" {
		return m[2]
	}
	return DefaultExtractedBadge
}
