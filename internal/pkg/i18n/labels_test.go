package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name           string
		acceptLanguage string
		expected       language.Tag
	}{
		{"empty header falls back to english", "", language.English},
		{"garbage falls back to english", ";;;", language.English},
		{"exact lithuanian", "lt", language.Lithuanian},
		{"regional lithuanian", "lt-LT", language.Lithuanian},
		{"english preferred", "en-US,en;q=0.9", language.English},
		{"unsupported locale falls back", "de-DE", language.English},
		{"lithuanian with quality", "lt;q=0.9,en;q=0.8", language.Lithuanian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Match(tt.acceptLanguage))
		})
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "In Progress", StatusLabel(language.English, domain.IncidentStatusInProgress))
	assert.Equal(t, "Vykdomas", StatusLabel(language.Lithuanian, domain.IncidentStatusInProgress))
	assert.Equal(t, "Uždarytas", StatusLabel(language.Lithuanian, domain.IncidentStatusClosed))

	// Unknown locale falls back to English
	assert.Equal(t, "New", StatusLabel(language.German, domain.IncidentStatusNew))

	// Unknown status falls back to raw identifier
	assert.Equal(t, "bogus", StatusLabel(language.English, domain.IncidentStatus("bogus")))
}

func TestSeverityAndCategoryLabels(t *testing.T) {
	assert.Equal(t, "Kritinis", SeverityLabel(language.Lithuanian, domain.SeverityCritical))
	assert.Equal(t, "Low", SeverityLabel(language.English, domain.SeverityLow))
	assert.Equal(t, "Kibernetinis", CategoryLabel(language.Lithuanian, domain.CategoryCyber))
	assert.Equal(t, "IT", CategoryLabel(language.Lithuanian, domain.CategoryIT))
}
