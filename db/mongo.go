package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/clubnest/club-nest-go/config"
)

// Client owns the process-wide Mongo connection. It is created once at
// startup and must be closed on shutdown.
type Client struct {
	mc     *mongo.Client
	dbName string
}

// Connect dials the cluster and verifies the connection with a ping.
func Connect(ctx context.Context, cfg *config.Config) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	mc, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := mc.Ping(pingCtx, nil); err != nil {
		_ = mc.Disconnect(ctx)
		return nil, err
	}

	return &Client{mc: mc, dbName: cfg.DBName}, nil
}

// Database returns the application database handle.
func (c *Client) Database() *mongo.Database {
	return c.mc.Database(c.dbName)
}

// EnsureIndexes creates the indexes the service relies on. The unique index
// on payments.transactionId is what makes payment reconciliation safe to
// replay: a second insert for the same transaction is rejected by the server.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	payments := c.Database().Collection("payments")
	_, err := payments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "transactionId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	// One membership per (club, member) pair. The unique index closes the
	// window between the duplicate pre-check and the insert.
	memberships := c.Database().Collection("membership")
	_, err = memberships.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "clubId", Value: 1}, {Key: "memberEmail", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// WithTransaction runs fn inside a multi-document transaction. The callback
// must use the context it is given for every collection call.
func (c *Client) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := c.mc.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// Close tears down the connection. Safe to call once during shutdown.
func (c *Client) Close(ctx context.Context) error {
	return c.mc.Disconnect(ctx)
}
