// Package commands defines the state-changing requests of the catalog.
package commands

import (
	"datacloud/domain/catalog"
	pkgerrors "datacloud/pkg/errors"
)

// AddEntryCommand adds a dataset to the catalog.
type AddEntryCommand struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	URL         string   `json:"url,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	// EntryID receives the generated ID after the command succeeds.
	EntryID string `json:"-"`
}

// Validate implements bus.Command.
func (c *AddEntryCommand) Validate() error {
	if c.Title == "" {
		return pkgerrors.NewValidationError("title is required")
	}
	if _, ok := catalog.ParseCategory(c.Category); !ok {
		return pkgerrors.NewValidationError("category must be one of the seven catalog categories")
	}
	return nil
}

// DeleteEntryCommand removes a dataset and its links.
type DeleteEntryCommand struct {
	ID string `json:"id"`
}

// Validate implements bus.Command.
func (c *DeleteEntryCommand) Validate() error {
	if c.ID == "" {
		return pkgerrors.NewValidationError("id is required")
	}
	return nil
}

// LinkEntriesCommand connects two datasets with a directed link.
type LinkEntriesCommand struct {
	SourceID string `json:"source"`
	TargetID string `json:"target"`
}

// Validate implements bus.Command.
func (c *LinkEntriesCommand) Validate() error {
	if c.SourceID == "" || c.TargetID == "" {
		return pkgerrors.NewValidationError("source and target are required")
	}
	if c.SourceID == c.TargetID {
		return pkgerrors.NewValidationError("cannot link an entry to itself")
	}
	return nil
}
