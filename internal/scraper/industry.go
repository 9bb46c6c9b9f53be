package scraper

import (
	"regexp"
	"strings"
)

const IndustryOther = "Other"

type industryRule struct {
	industry string
	pattern  *regexp.Regexp
}

func keywords(industry string, words ...string) industryRule {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return industryRule{industry: industry, pattern: regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)s?\b`)}
}

// Ties go to the earlier rule.
var industryRules = []industryRule{
	keywords("Healthcare", "hospital", "clinic", "doctor", "medical", "health", "patient", "dental", "pharmacy"),
	keywords("Restaurant", "restaurant", "menu", "cuisine", "dining", "food", "cafe"),
	keywords("Hospitality", "hotel", "resort", "room", "travel"),
	keywords("Education", "school", "college", "university", "course", "student", "academy"),
	keywords("Technology", "software", "cloud", "saas", "technology", "digital", "app"),
	keywords("Retail", "shop", "store", "retail", "fashion"),
	keywords("Finance", "bank", "finance", "loan", "insurance", "investment", "accounting"),
	keywords("Real Estate", "real estate", "property", "apartment", "realty"),
}

// Classify picks the industry whose keywords appear most often in text.
func Classify(text string) string {
	lower := strings.ToLower(text)
	best, bestHits := IndustryOther, 0
	for _, rule := range industryRules {
		if hits := len(rule.pattern.FindAllStringIndex(lower, -1)); hits > bestHits {
			best, bestHits = rule.industry, hits
		}
	}
	return best
}
