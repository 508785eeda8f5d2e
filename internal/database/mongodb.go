// Package database opens the MongoDB connection backing the platform's
// three collections: users (profiles plus their domain bindings), projects
// and admin_sessions.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names within the configured database.
const (
	CollectionUsers         = "users"
	CollectionProjects      = "projects"
	CollectionAdminSessions = "admin_sessions"
)

// ConnectMongo opens a connection, verifies it with a ping and returns the
// client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}
