package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
)

func TestKeywordAnalyzer(t *testing.T) {
	a := NewKeywordAnalyzer()

	t.Run("matches known terms", func(t *testing.T) {
		res, err := a.Analyze(context.Background(),
			"Email server down", "The mail server is not responding after the network change")
		require.NoError(t, err)
		assert.Equal(t, []string{"server", "network", "email"}, res.Tags)
		assert.Equal(t, domain.CategoryIT, res.SuggestedCategory)
		assert.Equal(t, domain.SeverityMedium, res.SuggestedSeverity)
		assert.Contains(t, res.Analysis, "server, network, email")
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		res, err := a.Analyze(context.Background(), "VPN Outage", "SERVER unreachable")
		require.NoError(t, err)
		assert.Equal(t, []string{"server", "vpn", "outage"}, res.Tags)
	})

	t.Run("substring matches count", func(t *testing.T) {
		res, err := a.Analyze(context.Background(), "Servers rebooting", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"server"}, res.Tags)
	})

	t.Run("caps at five tags", func(t *testing.T) {
		res, err := a.Analyze(context.Background(),
			"server network email database vpn", "security phishing malware")
		require.NoError(t, err)
		assert.Len(t, res.Tags, 5)
		assert.Equal(t, []string{"server", "network", "email", "database", "vpn"}, res.Tags)
	})

	t.Run("cyber terms raise category and severity", func(t *testing.T) {
		res, err := a.Analyze(context.Background(),
			"Phishing campaign", "Multiple users received a malware attachment")
		require.NoError(t, err)
		assert.Equal(t, []string{"phishing", "malware"}, res.Tags)
		assert.Equal(t, domain.CategoryCyber, res.SuggestedCategory)
		assert.Equal(t, domain.SeverityHigh, res.SuggestedSeverity)
	})

	t.Run("no matches yields empty tags", func(t *testing.T) {
		res, err := a.Analyze(context.Background(), "Broken chair", "The office chair wheel fell off")
		require.NoError(t, err)
		assert.Empty(t, res.Tags)
		assert.Contains(t, res.Analysis, "no known indicators")
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := a.Analyze(context.Background(), "Database outage", "backup failed")
		require.NoError(t, err)
		second, err := a.Analyze(context.Background(), "Database outage", "backup failed")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

type failingAnalyzer struct{}

func (failingAnalyzer) Analyze(context.Context, string, string) (*Result, error) {
	return nil, errors.New("upstream unavailable")
}

func TestChainFallsBack(t *testing.T) {
	chain := NewChain(failingAnalyzer{}, NewKeywordAnalyzer())

	res, err := chain.Analyze(context.Background(), "VPN access issue", "cannot connect")
	require.NoError(t, err)
	assert.Equal(t, []string{"vpn", "access"}, res.Tags)
}

func TestChainSkipsNil(t *testing.T) {
	chain := NewChain(nil, NewKeywordAnalyzer())

	res, err := chain.Analyze(context.Background(), "password reset", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"password"}, res.Tags)
}
