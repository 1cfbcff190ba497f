package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "datacloud/pkg/errors"
)

// Entry is a catalog record describing a single dataset.
type Entry struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Category    Category  `json:"category" bson:"category"`
	URL         string    `json:"url,omitempty" bson:"url,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// NewEntry creates a catalog entry with a generated ID and validated fields.
func NewEntry(title string, category Category, url, description string, tags []string) (*Entry, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}
	if !category.Valid() {
		return nil, pkgerrors.NewValidationError("unknown category: " + string(category))
	}

	now := time.Now().UTC()
	return &Entry{
		ID:          uuid.New().String(),
		Title:       title,
		Category:    category,
		URL:         strings.TrimSpace(url),
		Description: strings.TrimSpace(description),
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Navigable reports whether the entry carries a URL a client may be sent
// to. Only http and https targets qualify; "#" placeholders and relative
// paths do not.
func (e *Entry) Navigable() bool {
	return strings.HasPrefix(e.URL, "http")
}

// Matches reports whether the entry matches a free-text search term over
// title, description and tags. Matching is case-insensitive substring.
func (e *Entry) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Description), term) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
