// Package queries defines the read-side requests of the catalog.
package queries

import (
	"datacloud/domain/catalog"
	pkgerrors "datacloud/pkg/errors"
)

// GetGraphDataQuery asks for the full graph-cloud dataset.
type GetGraphDataQuery struct{}

// Validate implements bus.Query.
func (q GetGraphDataQuery) Validate() error { return nil }

// GraphNode is one rendered node in the graph-data result.
type GraphNode struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Color    string `json:"color"`
	URL      string `json:"url,omitempty"`
	InDegree int    `json:"inDegree"`
}

// GraphLink is one rendered edge in the graph-data result.
type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// GraphStats summarizes the rendered graph.
type GraphStats struct {
	NodeCount    int     `json:"node_count"`
	LinkCount    int     `json:"link_count"`
	DroppedNodes int     `json:"dropped_nodes"`
	DroppedLinks int     `json:"dropped_links"`
	Density      float64 `json:"density"`
}

// GetGraphDataResult is the complete graph visualization payload.
type GetGraphDataResult struct {
	Nodes  []GraphNode       `json:"nodes"`
	Links  []GraphLink       `json:"links"`
	Stats  GraphStats        `json:"stats"`
	Legend []GraphLegendItem `json:"legend"`
}

// GraphLegendItem is one category swatch.
type GraphLegendItem struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// SearchEntriesQuery searches the catalog.
type SearchEntriesQuery struct {
	Term     string `json:"q"`
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// Validate implements bus.Query.
func (q SearchEntriesQuery) Validate() error {
	if q.Category != "" {
		if _, ok := catalog.ParseCategory(q.Category); !ok {
			return pkgerrors.NewValidationError("unknown category filter")
		}
	}
	if q.Limit < 0 || q.Offset < 0 {
		return pkgerrors.NewValidationError("limit and offset must be non-negative")
	}
	return nil
}

// SearchEntriesResult holds a page of matches.
type SearchEntriesResult struct {
	Entries []catalog.Entry `json:"entries"`
	Total   int             `json:"total"`
}

// GetDashboardQuery asks for the catalog dashboard metrics.
type GetDashboardQuery struct{}

// Validate implements bus.Query.
func (q GetDashboardQuery) Validate() error { return nil }

// CategoryCount is the number of entries in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Color    string `json:"color"`
	Count    int    `json:"count"`
}

// DegreeBucket is the number of nodes with a given degree.
type DegreeBucket struct {
	Degree int `json:"degree"`
	Count  int `json:"count"`
}

// GetDashboardResult is the dashboard payload.
type GetDashboardResult struct {
	TotalEntries       int             `json:"total_entries"`
	TotalLinks         int             `json:"total_links"`
	RenderedNodes      int             `json:"rendered_nodes"`
	Density            float64         `json:"density"`
	Categories         []CategoryCount `json:"categories"`
	DegreeDistribution []DegreeBucket  `json:"degree_distribution"`
	Hub                string          `json:"hub,omitempty"`
	HubDegree          int             `json:"hub_degree"`
}
