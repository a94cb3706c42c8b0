// Package i18n maps canonical enum identifiers to display labels.
//
// The state machine and storage always use the English identifiers from the
// domain package; localized labels exist only at the presentation layer and
// never participate in comparisons.
package i18n

import (
	"golang.org/x/text/language"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
)

var supported = []language.Tag{
	language.English,    // canonical, first = fallback
	language.Lithuanian, // original deployment locale
}

var matcher = language.NewMatcher(supported)

// Match resolves an Accept-Language header value to a supported tag.
// Unknown or empty input falls back to English.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

var statusLabels = map[language.Tag]map[domain.IncidentStatus]string{
	language.English: {
		domain.IncidentStatusNew:        "New",
		domain.IncidentStatusAssigned:   "Assigned",
		domain.IncidentStatusInProgress: "In Progress",
		domain.IncidentStatusResolved:   "Resolved",
		domain.IncidentStatusClosed:     "Closed",
	},
	language.Lithuanian: {
		domain.IncidentStatusNew:        "Naujas",
		domain.IncidentStatusAssigned:   "Paskirtas",
		domain.IncidentStatusInProgress: "Vykdomas",
		domain.IncidentStatusResolved:   "Išspręstas",
		domain.IncidentStatusClosed:     "Uždarytas",
	},
}

var severityLabels = map[language.Tag]map[domain.Severity]string{
	language.English: {
		domain.SeverityCritical: "Critical",
		domain.SeverityHigh:     "High",
		domain.SeverityMedium:   "Medium",
		domain.SeverityLow:      "Low",
	},
	language.Lithuanian: {
		domain.SeverityCritical: "Kritinis",
		domain.SeverityHigh:     "Aukštas",
		domain.SeverityMedium:   "Vidutinis",
		domain.SeverityLow:      "Žemas",
	},
}

var categoryLabels = map[language.Tag]map[domain.Category]string{
	language.English: {
		domain.CategoryIT:    "IT",
		domain.CategoryCyber: "Cyber",
	},
	language.Lithuanian: {
		domain.CategoryIT:    "IT",
		domain.CategoryCyber: "Kibernetinis",
	},
}

// StatusLabel returns the display label for a status in the given locale.
func StatusLabel(tag language.Tag, s domain.IncidentStatus) string {
	if labels, ok := statusLabels[tag]; ok {
		if label, ok := labels[s]; ok {
			return label
		}
	}
	if label, ok := statusLabels[language.English][s]; ok {
		return label
	}
	return string(s)
}

// SeverityLabel returns the display label for a severity in the given locale.
func SeverityLabel(tag language.Tag, s domain.Severity) string {
	if labels, ok := severityLabels[tag]; ok {
		if label, ok := labels[s]; ok {
			return label
		}
	}
	if label, ok := severityLabels[language.English][s]; ok {
		return label
	}
	return string(s)
}

// CategoryLabel returns the display label for a category in the given locale.
func CategoryLabel(tag language.Tag, c domain.Category) string {
	if labels, ok := categoryLabels[tag]; ok {
		if label, ok := labels[c]; ok {
			return label
		}
	}
	if label, ok := categoryLabels[language.English][c]; ok {
		return label
	}
	return string(c)
}
