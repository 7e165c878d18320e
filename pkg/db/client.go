package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/srijeyam/tyrestore-backend/pkg/config"
	"github.com/srijeyam/tyrestore-backend/pkg/logger"
)

// Collection names used by the storefront.
const (
	CollectionAccounts  = "users"
	CollectionTyres     = "tyres"
	CollectionCartItems = "cartitems"
	CollectionOrders    = "orders"
)

// Client wraps the shared MongoDB connection.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Pinger exposes the health check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New boots a MongoDB client using the provided configuration and verifies
// connectivity. A failed connection here is fatal to the caller; disconnects
// after startup surface as per-request errors instead.
func New(ctx context.Context, cfg config.MongoConfig, logg *logger.Logger) (*Client, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb uri is required")
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout)

	conn, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("opening mongodb connection: %w", err)
	}

	if err := conn.Ping(ctx, nil); err != nil {
		_ = conn.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	client := &Client{
		client: conn,
		db:     conn.Database(cfg.Database),
	}

	if err := client.ensureIndexes(ctx); err != nil {
		_ = conn.Disconnect(ctx)
		return nil, fmt.Errorf("ensuring indexes: %w", err)
	}

	if logg != nil {
		ctx = logg.WithField(ctx, "database", cfg.Database)
		logg.Info(ctx, "mongodb connection established")
	}

	return client, nil
}

// ensureIndexes creates the unique email index backing signup conflict
// detection and the per-account lookup indexes for cart and orders.
func (c *Client) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionAccounts: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionCartItems: {
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionOrders: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := c.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("collection %s: %w", name, err)
		}
	}
	return nil
}

// Database returns the underlying database handle.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Collection returns a handle to the named collection.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Ping verifies the datasource is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

// Close shuts down the client's connections.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
