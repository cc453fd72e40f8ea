package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/plaza/internal/core/domain"
)

// defaultLimit applies when the caller does not set one.
const defaultLimit = 10

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query      string   `json:"query" jsonschema:"the text to look for in profiles and notes"`
	Limit      int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Offset     int      `json:"offset,omitempty" jsonschema:"number of ranked results to skip"`
	Strategy   string   `json:"strategy,omitempty" jsonschema:"ranking strategy: relevance, date, popularity, trust or name"`
	Categories []string `json:"categories,omitempty" jsonschema:"result categories to include: profile, content"`
	Since      string   `json:"since,omitempty" jsonschema:"only include results newer than this date, in any common format"`
	WebOfTrust *bool    `json:"web_of_trust,omitempty" jsonschema:"score authors by the configured viewer's follows (defaults to the stored setting)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Strategy string               `json:"strategy"`
	Results  []SearchResultOutput `json:"results"`
	Count    int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ID         string  `json:"id"`
	Category   string  `json:"category"`
	Title      string  `json:"title"`
	Summary    string  `json:"summary,omitempty"`
	Author     string  `json:"author,omitempty"`
	Score      float64 `json:"score"`
	Quality    float64 `json:"quality"`
	TrustLevel string  `json:"trust_level,omitempty"`
	CreatedAt  string  `json:"created_at,omitempty"`
}

// TrustInput is the input schema for the trust tool.
type TrustInput struct {
	Target string `json:"target" jsonschema:"pubkey of the account to score"`
	Viewer string `json:"viewer,omitempty" jsonschema:"pubkey whose follows define trust (defaults to the configured viewer)"`
}

// TrustOutput is the output schema for the trust tool.
type TrustOutput struct {
	Viewer string  `json:"viewer"`
	Target string  `json:"target"`
	Score  float64 `json:"score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search cached profiles and notes and rank the merged results",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "trust",
		Description: "Score an account by how the viewer's follows treat it",
	}, s.handleTrust)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts, err := s.searchOptions(input)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	strategy := opts.EffectiveStrategy()
	output := SearchOutput{
		Strategy: strategy.String(),
		Results:  make([]SearchResultOutput, len(results)),
		Count:    len(results),
	}

	for i := range results {
		res := &results[i]
		out := SearchResultOutput{
			ID:       res.ID,
			Category: res.Category.String(),
			Title:    res.Title,
			Summary:  res.Summary,
			Author:   res.Author,
			Score:    s.ports.Search.Score(strategy, *res),
			Quality:  domain.Deref(res.Metadata.QualityScore),
		}
		if res.Metadata.TrustLevel != nil {
			out.TrustLevel = res.Metadata.TrustLevel.String()
		}
		if created := res.Metadata.CreatedAt(); !created.IsZero() {
			out.CreatedAt = created.Format(time.RFC3339)
		}
		output.Results[i] = out
	}

	return nil, output, nil
}

// searchOptions layers tool input over the stored settings.
func (s *Server) searchOptions(input SearchInput) (domain.SearchOptions, error) {
	opts := domain.SearchOptions{
		Limit:      input.Limit,
		Offset:     input.Offset,
		Strategy:   domain.StrategyRelevance,
		Categories: domain.DefaultCategories(),
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}

	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil {
			opts.Strategy = settings.Search.Strategy
			opts.Categories = settings.Search.Categories
			opts.WebOfTrust = settings.Trust.Enabled && settings.Trust.IsConfigured()
			opts.Viewer = settings.Trust.Viewer
		}
	}

	if input.Strategy != "" {
		strategy, err := domain.ParseStrategy(input.Strategy)
		if err != nil {
			return opts, err
		}
		opts.Strategy = strategy
	}
	if len(input.Categories) > 0 {
		cats, err := domain.ParseCategorySet(input.Categories)
		if err != nil {
			return opts, err
		}
		opts.Categories = cats
	}
	if input.WebOfTrust != nil {
		opts.WebOfTrust = *input.WebOfTrust
	}
	if input.Since != "" {
		since, err := dateparse.ParseAny(input.Since)
		if err != nil {
			return opts, fmt.Errorf("%w: since %q: %v", domain.ErrInvalidInput, input.Since, err)
		}
		opts.Since = since
	}

	return opts, nil
}

// handleTrust handles the trust tool invocation.
func (s *Server) handleTrust(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TrustInput,
) (*mcp.CallToolResult, TrustOutput, error) {
	if s.ports.Trust == nil {
		return nil, TrustOutput{}, ErrTrustNotConfigured
	}

	viewer := input.Viewer
	if viewer == "" && s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil {
			viewer = settings.Trust.Viewer
		}
	}

	score, err := s.ports.Trust.Score(ctx, viewer, input.Target)
	if err != nil {
		return nil, TrustOutput{}, err
	}

	return nil, TrustOutput{Viewer: viewer, Target: input.Target, Score: score}, nil
}
