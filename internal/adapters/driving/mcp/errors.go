// Package mcp exposes the assistant over the Model Context Protocol so
// that MCP clients can ask questions and search the support corpus.
package mcp

import "errors"

// ErrMissingAssistant is returned when the assistant service is not provided.
var ErrMissingAssistant = errors.New("mcp: assistant service is required")
