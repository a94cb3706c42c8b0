package incidents

import (
	"sort"
	"strings"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
)

const (
	// tokens shorter than this carry no signal (articles, prepositions)
	minKeywordLen = 4

	similarityThreshold = 0.15
	similarityBoost     = 1.5
	similarityCap       = 0.95
	maxSimilar          = 5
	previewLength       = 150
)

// keywords tokenizes text into lowercase whitespace-separated words, keeping
// only those long enough to be meaningful. Duplicates are preserved so that
// repeated terms weigh the same as in the source text.
func keywords(text string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if len(w) >= minKeywordLen {
			out = append(out, w)
		}
	}
	return out
}

// FindSimilar scores candidates against the target incident by keyword
// overlap and returns up to five matches above the threshold, ordered by
// descending score. Keywords come from the target description; candidates
// are matched over their full title and description text. The target itself
// is excluded. Equal scores are ordered by ascending incident ID so results
// are stable.
func FindSimilar(target *domain.Incident, candidates []domain.Incident) []domain.SimilarIncident {
	targetKeywords := keywords(target.Description)

	var matches []domain.SimilarIncident
	for i := range candidates {
		c := &candidates[i]
		if c.ID == target.ID {
			continue
		}

		raw := overlap(targetKeywords, c.Title+" "+c.Description)
		if raw <= similarityThreshold {
			continue
		}

		boosted := raw * similarityBoost
		if boosted > similarityCap {
			boosted = similarityCap
		}

		matches = append(matches, domain.SimilarIncident{
			ID:          c.ID,
			Title:       c.Title,
			Description: preview(c.Description),
			Status:      c.Status,
			Similarity:  boosted,
			ResolvedAt:  c.ResolvedAt,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].ID < matches[j].ID
	})

	if len(matches) > maxSimilar {
		matches = matches[:maxSimilar]
	}
	return matches
}

// overlap computes the ratio of target keywords found as substrings within
// the candidate text's words.
func overlap(targetKeywords []string, candidateText string) float64 {
	if len(targetKeywords) == 0 {
		return 0
	}

	words := strings.Fields(strings.ToLower(candidateText))

	matched := 0
	for _, k := range targetKeywords {
		for _, w := range words {
			if strings.Contains(w, k) {
				matched++
				break
			}
		}
	}

	return float64(matched) / float64(len(targetKeywords))
}

// preview truncates on a rune boundary so multi-byte text is never split.
func preview(description string) string {
	runes := []rune(description)
	if len(runes) <= previewLength {
		return description
	}
	return string(runes[:previewLength]) + "..."
}
