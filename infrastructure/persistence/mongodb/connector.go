// Package mongodb implements catalog persistence on MongoDB.
package mongodb

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Connector lazily establishes and memoizes a single database handle.
// Connection failure is logged and propagated without retry; the next
// call dials again only because nothing was memoized.
type Connector struct {
	mu     sync.Mutex
	uri    string
	dbName string
	logger *zap.Logger

	client *mongo.Client
	db     *mongo.Database
}

// NewConnector creates a connector for the given connection string and
// database name. No I/O happens until Connect.
func NewConnector(uri, dbName string, logger *zap.Logger) *Connector {
	return &Connector{uri: uri, dbName: dbName, logger: logger}
}

// Connect returns the memoized database handle, dialing on first use.
func (c *Connector) Connect(ctx context.Context) (*mongo.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(c.uri))
	if err != nil {
		c.logger.Error("mongodb connection failed", zap.Error(err))
		return nil, err
	}
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		c.logger.Error("mongodb ping failed", zap.Error(err))
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	c.client = client
	c.db = client.Database(c.dbName)
	c.logger.Info("mongodb connected", zap.String("database", c.dbName))
	return c.db, nil
}

// Close disconnects the memoized client, if any.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	c.db = nil
	return err
}
