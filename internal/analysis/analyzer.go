// Package analysis classifies incidents: an LLM-backed analyzer when an API
// key is configured, with a deterministic keyword analyzer as fallback.
package analysis

import (
	"context"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
)

// Result is the outcome of analyzing an incident's text.
type Result struct {
	Tags              []string        `json:"tags"`
	Analysis          string          `json:"analysis"`
	SuggestedCategory domain.Category `json:"suggestedCategory,omitempty"`
	SuggestedSeverity domain.Severity `json:"suggestedSeverity,omitempty"`
}

// Analyzer produces tags and a summary for an incident.
type Analyzer interface {
	Analyze(ctx context.Context, title, description string) (*Result, error)
}

// Chain tries analyzers in order and returns the first successful result.
// The last analyzer in the chain is expected to never fail.
type Chain struct {
	analyzers []Analyzer
}

// NewChain builds an analyzer chain. Nil entries are skipped.
func NewChain(analyzers ...Analyzer) *Chain {
	c := &Chain{}
	for _, a := range analyzers {
		if a != nil {
			c.analyzers = append(c.analyzers, a)
		}
	}
	return c
}

// Analyze runs the chain. It only returns an error when every analyzer fails.
func (c *Chain) Analyze(ctx context.Context, title, description string) (*Result, error) {
	var lastErr error
	for _, a := range c.analyzers {
		res, err := a.Analyze(ctx, title, description)
		if err == nil {
			return res, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
