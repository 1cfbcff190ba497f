// Package handlers implements the command handlers of the catalog.
package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"datacloud/application/commands"
	"datacloud/application/commands/bus"
	"datacloud/application/ports"
	"datacloud/domain/catalog"
)

// AddEntryHandler persists new catalog entries.
type AddEntryHandler struct {
	repo   ports.EntryRepository
	logger *zap.Logger
}

// NewAddEntryHandler creates the handler.
func NewAddEntryHandler(repo ports.EntryRepository, logger *zap.Logger) *AddEntryHandler {
	return &AddEntryHandler{repo: repo, logger: logger}
}

// Handle implements bus.CommandHandler.
func (h *AddEntryHandler) Handle(ctx context.Context, cmd bus.Command) error {
	add, ok := cmd.(*commands.AddEntryCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	category, _ := catalog.ParseCategory(add.Category)
	entry, err := catalog.NewEntry(add.Title, category, add.URL, add.Description, add.Tags)
	if err != nil {
		return err
	}

	if err := h.repo.Save(ctx, entry); err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}

	add.EntryID = entry.ID
	h.logger.Info("catalog entry added",
		zap.String("id", entry.ID),
		zap.String("category", string(entry.Category)),
	)
	return nil
}

// DeleteEntryHandler removes entries together with their links.
type DeleteEntryHandler struct {
	repo   ports.EntryRepository
	logger *zap.Logger
}

// NewDeleteEntryHandler creates the handler.
func NewDeleteEntryHandler(repo ports.EntryRepository, logger *zap.Logger) *DeleteEntryHandler {
	return &DeleteEntryHandler{repo: repo, logger: logger}
}

// Handle implements bus.CommandHandler.
func (h *DeleteEntryHandler) Handle(ctx context.Context, cmd bus.Command) error {
	del, ok := cmd.(*commands.DeleteEntryCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	if _, err := h.repo.GetByID(ctx, del.ID); err != nil {
		return err
	}
	if err := h.repo.Delete(ctx, del.ID); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	h.logger.Info("catalog entry deleted", zap.String("id", del.ID))
	return nil
}

// LinkEntriesHandler stores links between existing entries.
type LinkEntriesHandler struct {
	repo   ports.EntryRepository
	logger *zap.Logger
}

// NewLinkEntriesHandler creates the handler.
func NewLinkEntriesHandler(repo ports.EntryRepository, logger *zap.Logger) *LinkEntriesHandler {
	return &LinkEntriesHandler{repo: repo, logger: logger}
}

// Handle implements bus.CommandHandler. Both endpoints must exist before
// a link is stored; dangling links would only be filtered out again at
// render time.
func (h *LinkEntriesHandler) Handle(ctx context.Context, cmd bus.Command) error {
	link, ok := cmd.(*commands.LinkEntriesCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	if _, err := h.repo.GetByID(ctx, link.SourceID); err != nil {
		return fmt.Errorf("link source: %w", err)
	}
	if _, err := h.repo.GetByID(ctx, link.TargetID); err != nil {
		return fmt.Errorf("link target: %w", err)
	}

	if err := h.repo.SaveLink(ctx, catalog.Link{Source: link.SourceID, Target: link.TargetID}); err != nil {
		return fmt.Errorf("saving link: %w", err)
	}

	h.logger.Info("entries linked",
		zap.String("source", link.SourceID),
		zap.String("target", link.TargetID),
	)
	return nil
}
