// Package handlers implements the query handlers of the catalog.
package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"datacloud/application/ports"
	"datacloud/application/queries"
	"datacloud/application/queries/bus"
	"datacloud/domain/catalog"
	"datacloud/visualization/graphview"
)

// GetGraphDataHandler assembles the graph-cloud payload.
type GetGraphDataHandler struct {
	repo   ports.EntryRepository
	logger *zap.Logger
}

// NewGetGraphDataHandler creates the handler.
func NewGetGraphDataHandler(repo ports.EntryRepository, logger *zap.Logger) *GetGraphDataHandler {
	return &GetGraphDataHandler{repo: repo, logger: logger}
}

// Handle implements bus.QueryHandler.
func (h *GetGraphDataHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(queries.GetGraphDataQuery); !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	snap, err := h.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	view, err := graphview.Build(snap)
	if err != nil {
		return nil, fmt.Errorf("building graph view: %w", err)
	}

	result := &queries.GetGraphDataResult{
		Nodes: make([]queries.GraphNode, 0, len(view.Nodes)),
		Links: make([]queries.GraphLink, 0, len(view.Links)),
		Stats: queries.GraphStats{
			NodeCount:    len(view.Nodes),
			LinkCount:    len(view.Links),
			DroppedNodes: view.DroppedNodes,
			DroppedLinks: view.DroppedLinks,
			Density:      view.Density(),
		},
	}

	for _, node := range view.Nodes {
		result.Nodes = append(result.Nodes, queries.GraphNode{
			ID:       node.ID,
			Title:    node.Title,
			Category: string(node.Category),
			Color:    node.Category.Color(),
			URL:      node.URL,
			InDegree: node.InDegree,
		})
	}
	for _, link := range view.Links {
		result.Links = append(result.Links, queries.GraphLink{
			Source: link.Source,
			Target: link.Target,
		})
	}

	present := map[catalog.Category]bool{}
	for _, node := range view.Nodes {
		present[node.Category] = true
	}
	for _, c := range catalog.Categories {
		if present[c] {
			result.Legend = append(result.Legend, queries.GraphLegendItem{
				Label: string(c),
				Color: c.Color(),
			})
		}
	}

	return result, nil
}
