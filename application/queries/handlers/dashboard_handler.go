package handlers

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"datacloud/application/ports"
	"datacloud/application/queries"
	"datacloud/application/queries/bus"
	"datacloud/domain/catalog"
	"datacloud/visualization/graphview"
)

// GetDashboardHandler computes the catalog dashboard metrics.
type GetDashboardHandler struct {
	repo   ports.EntryRepository
	logger *zap.Logger
}

// NewGetDashboardHandler creates the handler.
func NewGetDashboardHandler(repo ports.EntryRepository, logger *zap.Logger) *GetDashboardHandler {
	return &GetDashboardHandler{repo: repo, logger: logger}
}

// Handle implements bus.QueryHandler.
func (h *GetDashboardHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(queries.GetDashboardQuery); !ok {
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

	result := &queries.GetDashboardResult{
		TotalEntries:  len(snap.Entries),
		TotalLinks:    len(snap.Links),
		RenderedNodes: len(view.Nodes),
		Density:       view.Density(),
	}

	// Entries per category, fixed category order, empty ones included
	// so the dashboard table is stable.
	perCategory := map[catalog.Category]int{}
	for _, entry := range snap.Entries {
		perCategory[entry.Category]++
	}
	for _, c := range catalog.Categories {
		result.Categories = append(result.Categories, queries.CategoryCount{
			Category: string(c),
			Color:    c.Color(),
			Count:    perCategory[c],
		})
	}

	// Undirected degree distribution plus the hub, the busiest node.
	degrees := map[string]int{}
	for _, link := range view.Links {
		degrees[link.Source]++
		degrees[link.Target]++
	}
	buckets := map[int]int{}
	for _, node := range view.Nodes {
		buckets[degrees[node.ID]]++
		if degrees[node.ID] > result.HubDegree {
			result.HubDegree = degrees[node.ID]
			result.Hub = node.Title
		}
	}
	for degree, count := range buckets {
		result.DegreeDistribution = append(result.DegreeDistribution, queries.DegreeBucket{
			Degree: degree,
			Count:  count,
		})
	}
	sort.Slice(result.DegreeDistribution, func(i, j int) bool {
		return result.DegreeDistribution[i].Degree < result.DegreeDistribution[j].Degree
	})

	return result, nil
}
