package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
)

// vocabulary scanned against the incident text, in priority order.
var vocabulary = []string{
	"server", "network", "email", "database", "vpn", "security",
	"phishing", "malware", "outage", "performance", "access", "password",
	"backup", "firewall", "virus", "attack",
}

var cyberTerms = map[string]bool{
	"security": true,
	"phishing": true,
	"malware":  true,
	"firewall": true,
	"virus":    true,
	"attack":   true,
}

var highImpactTerms = map[string]bool{
	"outage":   true,
	"malware":  true,
	"virus":    true,
	"attack":   true,
	"phishing": true,
}

const maxTags = 5

// KeywordAnalyzer tags incidents by scanning their text for a fixed
// vocabulary. It is fully deterministic and never fails, so it terminates
// every analyzer chain.
type KeywordAnalyzer struct{}

// NewKeywordAnalyzer returns the deterministic keyword analyzer.
func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{}
}

// Analyze scans the lowercased title and description for vocabulary terms.
// At most five tags are produced, in vocabulary order.
func (a *KeywordAnalyzer) Analyze(_ context.Context, title, description string) (*Result, error) {
	text := strings.ToLower(title + " " + description)

	var tags []string
	for _, term := range vocabulary {
		if len(tags) >= maxTags {
			break
		}
		if strings.Contains(text, term) {
			tags = append(tags, term)
		}
	}

	res := &Result{
		Tags:              tags,
		SuggestedCategory: domain.CategoryIT,
		SuggestedSeverity: domain.SeverityMedium,
	}

	for _, tag := range tags {
		if cyberTerms[tag] {
			res.SuggestedCategory = domain.CategoryCyber
		}
		if highImpactTerms[tag] {
			res.SuggestedSeverity = domain.SeverityHigh
		}
	}

	if len(tags) == 0 {
		res.Analysis = "Keyword analysis found no known indicators in the incident text. Manual triage recommended."
	} else {
		res.Analysis = fmt.Sprintf(
			"Keyword analysis identified the following indicators: %s. Suggested category: %s, suggested severity: %s.",
			strings.Join(tags, ", "), res.SuggestedCategory, res.SuggestedSeverity,
		)
	}

	return res, nil
}
