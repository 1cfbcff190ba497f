package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"datacloud/domain/catalog"
	pkgerrors "datacloud/pkg/errors"
)

const (
	entriesCollection = "datasets"
	linksCollection   = "links"
)

// EntryRepository implements ports.EntryRepository on MongoDB.
type EntryRepository struct {
	connector *Connector
	logger    *zap.Logger
}

// NewEntryRepository creates the repository. The database handle is
// acquired per call through the memoizing connector.
func NewEntryRepository(connector *Connector, logger *zap.Logger) *EntryRepository {
	return &EntryRepository{connector: connector, logger: logger}
}

func (r *EntryRepository) entries(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(entriesCollection), nil
}

func (r *EntryRepository) links(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(linksCollection), nil
}

// Save inserts or replaces an entry.
func (r *EntryRepository) Save(ctx context.Context, entry *catalog.Entry) error {
	coll, err := r.entries(ctx)
	if err != nil {
		return err
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := coll.ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry, opts); err != nil {
		return pkgerrors.NewDatabaseError("save entry", err)
	}
	return nil
}

// GetByID fetches a single entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*catalog.Entry, error) {
	coll, err := r.entries(ctx)
	if err != nil {
		return nil, err
	}

	var entry catalog.Entry
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("entry %q", id))
	}
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get entry", err)
	}
	return &entry, nil
}

// Delete removes an entry and every link touching it.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	coll, err := r.entries(ctx)
	if err != nil {
		return err
	}
	links, err := r.links(ctx)
	if err != nil {
		return err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return pkgerrors.NewDatabaseError("delete entry", err)
	}
	if result.DeletedCount == 0 {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("entry %q", id))
	}

	filter := bson.M{"$or": bson.A{bson.M{"source": id}, bson.M{"target": id}}}
	if _, err := links.DeleteMany(ctx, filter); err != nil {
		return pkgerrors.NewDatabaseError("delete entry links", err)
	}
	return nil
}

// List returns every entry in insertion order.
func (r *EntryRepository) List(ctx context.Context) ([]catalog.Entry, error) {
	coll, err := r.entries(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list entries", err)
	}
	defer cursor.Close(ctx)

	var entries []catalog.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, pkgerrors.NewDatabaseError("decode entries", err)
	}
	return entries, nil
}

// Search matches a free-text term against title, description and tags,
// optionally restricted to one category.
func (r *EntryRepository) Search(ctx context.Context, term string, category catalog.Category) ([]catalog.Entry, error) {
	coll, err := r.entries(ctx)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if term != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
			bson.M{"tags": regex},
		}
	}
	if category != "" {
		filter["category"] = string(category)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("search entries", err)
	}
	defer cursor.Close(ctx)

	var entries []catalog.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, pkgerrors.NewDatabaseError("decode search results", err)
	}
	return entries, nil
}

// SaveLink stores a directed link.
func (r *EntryRepository) SaveLink(ctx context.Context, link catalog.Link) error {
	coll, err := r.links(ctx)
	if err != nil {
		return err
	}

	filter := bson.M{"source": link.Source, "target": link.Target}
	opts := options.Replace().SetUpsert(true)
	if _, err := coll.ReplaceOne(ctx, filter, link, opts); err != nil {
		return pkgerrors.NewDatabaseError("save link", err)
	}
	return nil
}

// Links returns every stored link.
func (r *EntryRepository) Links(ctx context.Context) ([]catalog.Link, error) {
	coll, err := r.links(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list links", err)
	}
	defer cursor.Close(ctx)

	var links []catalog.Link
	if err := cursor.All(ctx, &links); err != nil {
		return nil, pkgerrors.NewDatabaseError("decode links", err)
	}
	return links, nil
}

// Snapshot returns all entries and links as one renderable unit.
func (r *EntryRepository) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	entries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	links, err := r.Links(ctx)
	if err != nil {
		return nil, err
	}
	return &catalog.Snapshot{Entries: entries, Links: links}, nil
}

