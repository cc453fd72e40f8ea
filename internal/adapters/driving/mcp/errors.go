// Package mcp provides an MCP (Model Context Protocol) server adapter for plaza.
// It lets AI assistants search the local event cache and query trust scores.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrTrustNotConfigured is returned by the trust tool without a trust service.
var ErrTrustNotConfigured = errors.New("mcp: trust service not configured")
