package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/plaza/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for plaza resources.
	uriScheme = "plaza://"
)

// settingsView is the JSON shape of the settings resource.
type settingsView struct {
	Strategy   string   `json:"strategy"`
	Categories []string `json:"categories"`
	PageSize   int      `json:"page_size"`
	Trust      bool     `json:"trust_enabled"`
	Viewer     string   `json:"viewer,omitempty"`
}

// strategyView is one entry of the strategies resource.
type strategyView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Current search and trust settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "strategies",
		Name:        "strategies",
		Description: "Available ranking strategies",
		MIMEType:    "application/json",
	}, s.handleStrategiesResource)
}

// handleSettingsResource returns the stored settings, or defaults when no
// settings service is wired.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings := domain.DefaultAppSettings()
	if s.ports.Settings != nil {
		stored, err := s.ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("getting settings: %w", err)
		}
		settings = *stored
	}

	return jsonResource(req.Params.URI, settingsView{
		Strategy:   settings.Search.Strategy.String(),
		Categories: settings.Search.Categories.Strings(),
		PageSize:   settings.Search.PageSize,
		Trust:      settings.Trust.Enabled,
		Viewer:     settings.Trust.Viewer,
	})
}

// handleStrategiesResource lists every ranking strategy.
func (s *Server) handleStrategiesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	strategies := domain.Strategies()
	views := make([]strategyView, len(strategies))
	for i, st := range strategies {
		views[i] = strategyView{Name: st.String(), Description: st.Description()}
	}
	return jsonResource(req.Params.URI, views)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
