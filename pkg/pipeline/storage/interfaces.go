// Package storage defines the common interfaces for artifact storage
// adapters. They abstract storage operations so the pipeline can keep its
// intermediate artifacts on different backends (local file system, GCS)
// through a unified API.
package storage

import (
	"context"
	"io"
)

// Executor defines generic storage operations, embedded into Connection.
type Executor interface {
	// Upload writes data to the specified bucket and object name.
	Upload(ctx context.Context, bucket, objectName string, data io.Reader, contentType string) error
	// Download reads data from the specified bucket and object name.
	// The returned ReadCloser must be closed by the caller.
	Download(ctx context.Context, bucket, objectName string) (io.ReadCloser, error)
	// ListObjects calls fn for each object under the given prefix.
	ListObjects(ctx context.Context, bucket, prefix string, fn func(objectName string) error) error
	// DeleteObject deletes the specified object. Deleting a missing object
	// is not an error.
	DeleteObject(ctx context.Context, bucket, objectName string) error
}

// Connection represents a named storage connection.
type Connection interface {
	Executor

	// Close releases any resources held by the connection.
	Close() error
	// Type returns the adapter type (e.g. "local", "gcs").
	Type() string
	// Name returns the configured connection name.
	Name() string
}

// Provider manages the acquisition and lifecycle of storage connections of
// a single adapter type.
type Provider interface {
	// GetConnection retrieves or creates the connection with the given name.
	GetConnection(name string) (Connection, error)
	// CloseAll closes all connections managed by this provider.
	CloseAll() error
	// Type returns the adapter type this provider handles.
	Type() string
}

// Resolver resolves a named storage connection to the provider of its
// configured type.
type Resolver interface {
	ResolveConnection(ctx context.Context, name string) (Connection, error)
}
