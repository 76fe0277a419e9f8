package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabase is used when neither the config nor the URI name a database.
const DefaultDatabase = "test"

// Options tunes how long the driver waits on an unreachable deployment.
// OperationTimeout bounds every operation whose context carries no deadline of its own.
type Options struct {
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	OperationTimeout       time.Duration
}

// Client represents a MongoDB client
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient creates a new MongoDB client.
// It does not wait for the deployment to answer: the driver connects lazily, so the
// process can start serving while MongoDB is still unreachable.
func NewClient(uri string, opts Options) (*Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	if opts.ServerSelectionTimeout > 0 {
		clientOptions.SetServerSelectionTimeout(opts.ServerSelectionTimeout)
	}
	if opts.SocketTimeout > 0 {
		clientOptions.SetSocketTimeout(opts.SocketTimeout)
	}
	if opts.OperationTimeout > 0 {
		clientOptions.SetTimeout(opts.OperationTimeout)
	}

	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	return &Client{
		client: client,
	}, nil
}

// Ping checks that the deployment answers within ctx.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

// Database returns a database
func (c *Client) Database(name string) *mongo.Database {
	if c.db == nil || c.db.Name() != name {
		c.db = c.client.Database(name)
	}
	return c.db
}

// Disconnect disconnects from MongoDB
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// DatabaseFromURI returns the database named in the URI path, or DefaultDatabase.
func DatabaseFromURI(uri string) string {
	cs, err := connstring.Parse(uri)
	if err != nil || cs.Database == "" {
		return DefaultDatabase
	}
	return cs.Database
}
