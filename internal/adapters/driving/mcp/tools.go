package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"a customer support question about insurance, trading or accounts"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Tier    string         `json:"tier"`
	Sources []SourceOutput `json:"sources"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"text to find relevant passages for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of passages to return (default 3)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SourceOutput `json:"results"`
	Count   int            `json:"count"`
}

// SourceOutput is one retrieved passage. Relevance is 1 - distance.
type SourceOutput struct {
	Source    string  `json:"source"`
	Title     string  `json:"title,omitempty"`
	Text      string  `json:"text"`
	Distance  float64 `json:"distance"`
	Relevance float64 `json:"relevance"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a customer support question from the indexed documents and web pages",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Return the passages most relevant to a query without generating an answer",
	}, s.handleSearch)
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, AskOutput{}, fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}

	answer, err := s.ports.Assistant.Ask(ctx, question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Text,
		Tier:    answer.Tier.String(),
		Sources: make([]SourceOutput, len(answer.Sources)),
	}
	for i, src := range answer.Sources {
		output.Sources[i] = SourceOutput{
			Source:    src.Source,
			Text:      src.Text,
			Distance:  src.Score,
			Relevance: 1 - src.Score,
		}
	}
	return nil, output, nil
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, SearchOutput{}, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	results, err := s.ports.Assistant.Search(ctx, query, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SourceOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		output.Results[i] = SourceOutput{
			Source:    r.Source,
			Title:     r.Title,
			Text:      r.Text,
			Distance:  r.Distance,
			Relevance: 1 - r.Distance,
		}
	}
	return nil, output, nil
}
