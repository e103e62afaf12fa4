// Package gcs provides a Google Cloud Storage implementation of the storage
// adapter interfaces.
package gcs

import (
	"context"
	"fmt"
	"io"
	"sync"

	gcstorage "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	coreConfig "github.com/ananya923/movieflow/pkg/pipeline/config"
	storageAdapter "github.com/ananya923/movieflow/pkg/pipeline/storage"
	storageConfig "github.com/ananya923/movieflow/pkg/pipeline/storage/config"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// ProviderType defines the type identifier for this storage provider.
const ProviderType = "gcs"

// gcsAdapter implements storage.Connection backed by a GCS client.
type gcsAdapter struct {
	client *gcstorage.Client
	cfg    storageConfig.StorageConfig
	name   string
}

var _ storageAdapter.Connection = (*gcsAdapter)(nil)

// NewGCSAdapter creates a new gcsAdapter instance. When CredentialsFile is
// set it is used explicitly; otherwise application default credentials apply.
func NewGCSAdapter(ctx context.Context, cfg storageConfig.StorageConfig, name string) (storageAdapter.Connection, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs storage adapter '%s': failed to create client: %w", name, err)
	}

	return &gcsAdapter{client: client, cfg: cfg, name: name}, nil
}

// Close closes the underlying GCS client.
func (a *gcsAdapter) Close() error {
	logger.Debugf("GCS storage adapter '%s' closed.", a.name)
	return a.client.Close()
}

// Type returns "gcs".
func (a *gcsAdapter) Type() string {
	return ProviderType
}

// Name returns the name of this connection.
func (a *gcsAdapter) Name() string {
	return a.name
}

// bucketName returns the explicit bucket or the configured default.
func (a *gcsAdapter) bucketName(bucket string) (string, error) {
	if bucket == "" {
		bucket = a.cfg.BucketName
	}
	if bucket == "" {
		return "", fmt.Errorf("gcs storage adapter '%s': no bucket specified and no default configured", a.name)
	}
	return bucket, nil
}

// Upload streams data into the specified object.
func (a *gcsAdapter) Upload(ctx context.Context, bucket, objectName string, data io.Reader, contentType string) error {
	b, err := a.bucketName(bucket)
	if err != nil {
		return err
	}

	w := a.client.Bucket(b).Object(objectName).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, data); err != nil {
		w.Close()
		return fmt.Errorf("failed to upload object 'gs://%s/%s': %w", b, objectName, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize object 'gs://%s/%s': %w", b, objectName, err)
	}
	logger.Debugf("Uploaded data to 'gs://%s/%s' (gcs adapter '%s').", b, objectName, a.name)
	return nil
}

// Download opens a reader for the specified object. The returned ReadCloser
// must be closed by the caller.
func (a *gcsAdapter) Download(ctx context.Context, bucket, objectName string) (io.ReadCloser, error) {
	b, err := a.bucketName(bucket)
	if err != nil {
		return nil, err
	}

	r, err := a.client.Bucket(b).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object 'gs://%s/%s': %w", b, objectName, err)
	}
	return r, nil
}

// ListObjects iterates objects under the prefix and calls fn for each name.
func (a *gcsAdapter) ListObjects(ctx context.Context, bucket, prefix string, fn func(objectName string) error) error {
	b, err := a.bucketName(bucket)
	if err != nil {
		return err
	}

	it := a.client.Bucket(b).Objects(ctx, &gcstorage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list objects in 'gs://%s' with prefix '%s': %w", b, prefix, err)
		}
		if err := fn(attrs.Name); err != nil {
			return err
		}
	}
	return nil
}

// DeleteObject deletes the specified object. A missing object is not an
// error.
func (a *gcsAdapter) DeleteObject(ctx context.Context, bucket, objectName string) error {
	b, err := a.bucketName(bucket)
	if err != nil {
		return err
	}

	if err := a.client.Bucket(b).Object(objectName).Delete(ctx); err != nil {
		if err == gcstorage.ErrObjectNotExist {
			logger.Warnf("Attempted to delete non-existent object 'gs://%s/%s' (gcs adapter '%s').", b, objectName, a.name)
			return nil
		}
		return fmt.Errorf("failed to delete object 'gs://%s/%s': %w", b, objectName, err)
	}
	logger.Debugf("Deleted object 'gs://%s/%s' (gcs adapter '%s').", b, objectName, a.name)
	return nil
}

// GCSProvider implements storage.Provider for GCS connections.
type GCSProvider struct {
	cfg         *coreConfig.Config
	connections map[string]storageAdapter.Connection
	mu          sync.RWMutex
}

// NewGCSProvider creates a new GCSProvider instance.
func NewGCSProvider(cfg *coreConfig.Config) storageAdapter.Provider {
	return &GCSProvider{
		cfg:         cfg,
		connections: make(map[string]storageAdapter.Connection),
	}
}

// GetConnection retrieves or creates the connection with the given name.
func (p *GCSProvider) GetConnection(name string) (storageAdapter.Connection, error) {
	p.mu.RLock()
	conn, ok := p.connections[name]
	p.mu.RUnlock()
	if ok {
		return conn, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if conn, ok = p.connections[name]; ok {
		return conn, nil
	}

	storageCfg, err := storageAdapter.DecodeNamedConfig(p.cfg, name)
	if err != nil {
		return nil, err
	}
	if storageCfg.Type != ProviderType {
		return nil, fmt.Errorf("storage config type mismatch for '%s': expected '%s', got '%s'", name, ProviderType, storageCfg.Type)
	}

	newConn, err := NewGCSAdapter(context.Background(), storageCfg, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs adapter for '%s': %w", name, err)
	}

	p.connections[name] = newConn
	logger.Debugf("Created new gcs storage connection '%s'.", name)
	return newConn, nil
}

// CloseAll closes all connections managed by this provider.
func (p *GCSProvider) CloseAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for name, conn := range p.connections {
		if err := conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close gcs storage connection '%s': %w", name, err))
		}
		delete(p.connections, name)
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing gcs storage connections: %v", errs)
	}
	return nil
}

// Type returns "gcs".
func (p *GCSProvider) Type() string {
	return ProviderType
}
