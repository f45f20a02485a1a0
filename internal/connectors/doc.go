// Package connectors holds the sources documents are read from: the
// filesystem loader for local files and the web crawler for the support
// site. Each sub-package implements a driven port from
// internal/core/ports/driven.
package connectors
