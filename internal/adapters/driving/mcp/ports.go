package mcp

import (
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
type Ports struct {
	// Assistant answers questions and searches the index.
	Assistant driving.AssistantService

	// Ingest exposes the cached corpus as resources. Optional.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistant
	}
	return nil
}
