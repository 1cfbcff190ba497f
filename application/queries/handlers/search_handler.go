package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"datacloud/application/ports"
	"datacloud/application/queries"
	"datacloud/application/queries/bus"
	"datacloud/domain/catalog"
)

const defaultSearchLimit = 50

// SearchEntriesHandler runs catalog searches.
type SearchEntriesHandler struct {
	repo   ports.EntryRepository
	logger *zap.Logger
}

// NewSearchEntriesHandler creates the handler.
func NewSearchEntriesHandler(repo ports.EntryRepository, logger *zap.Logger) *SearchEntriesHandler {
	return &SearchEntriesHandler{repo: repo, logger: logger}
}

// Handle implements bus.QueryHandler.
func (h *SearchEntriesHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	search, ok := query.(queries.SearchEntriesQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	category := catalog.Category(search.Category)
	matches, err := h.repo.Search(ctx, search.Term, category)
	if err != nil {
		return nil, fmt.Errorf("searching entries: %w", err)
	}

	limit := search.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}

	total := len(matches)
	start := search.Offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &queries.SearchEntriesResult{
		Entries: matches[start:end],
		Total:   total,
	}, nil
}
