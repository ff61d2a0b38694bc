package s3

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/mwantia/sectorfs/data"
	"github.com/mwantia/sectorfs/medium"
)

// S3Medium stores resources as objects inside a single bucket of any
// S3-compatible object store.
type S3Medium struct {
	mu sync.RWMutex

	client     *minio.Client
	bucketName string
	prefix     string
}

// S3MediumConfig contains configuration options for the S3 medium.
type S3MediumConfig struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool

	// Prefix prepended to every object name (optional)
	Prefix string
}

func NewS3Medium(config *S3MediumConfig) (*S3Medium, error) {
	if config == nil || config.Endpoint == "" || config.Bucket == "" {
		return nil, data.ErrInvalid
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &S3Medium{
		client:     client,
		bucketName: config.Bucket,
		prefix:     config.Prefix,
	}, nil
}

// Name returns the identifier name defined for this medium.
func (*S3Medium) Name() string {
	return "s3"
}

// Open verifies the bucket exists and is reachable.
func (sm *S3Medium) Open(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	exists, err := sm.client.BucketExists(ctx, sm.bucketName)
	if err != nil {
		return err
	}

	if !exists {
		return data.ErrMediumFailed
	}

	return nil
}

func (sm *S3Medium) Close(ctx context.Context) error {
	return nil
}

// Capabilities returns a list of capabilities supported by this medium.
func (sm *S3Medium) Capabilities() *medium.Capabilities {
	return &medium.Capabilities{
		Capabilities: []medium.Capability{
			medium.CapabilityPersistent,
			medium.CapabilityRemote,
		},
	}
}

func (sm *S3Medium) buildKey(name string) string {
	return sm.prefix + name
}

func (sm *S3Medium) OpenRead(ctx context.Context, name string) (io.ReadCloser, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	key := sm.buildKey(name)

	// GetObject defers errors until the first read, so stat first to
	// surface absence at open time.
	if _, err := sm.client.StatObject(ctx, sm.bucketName, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fs.ErrNotExist
		}

		return nil, err
	}

	obj, err := sm.client.GetObject(ctx, sm.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	return obj, nil
}

func (sm *S3Medium) OpenAppend(ctx context.Context, name string) (io.WriteCloser, error) {
	return medium.NewCommitWriter(func(buf []byte) error {
		sm.mu.Lock()
		defer sm.mu.Unlock()

		content, err := sm.readAll(ctx, name)
		if err != nil {
			return err
		}

		return sm.put(ctx, name, append(content, buf...))
	}), nil
}

func (sm *S3Medium) OpenTruncate(ctx context.Context, name string) (io.WriteCloser, error) {
	return medium.NewCommitWriter(func(buf []byte) error {
		sm.mu.Lock()
		defer sm.mu.Unlock()

		return sm.put(ctx, name, buf)
	}), nil
}

// readAll fetches the current content of an object.
// Absent objects yield empty content.
func (sm *S3Medium) readAll(ctx context.Context, name string) ([]byte, error) {
	obj, err := sm.client.GetObject(ctx, sm.bucketName, sm.buildKey(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	content, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil
		}

		return nil, err
	}

	return content, nil
}

func (sm *S3Medium) put(ctx context.Context, name string, content []byte) error {
	_, err := sm.client.PutObject(ctx, sm.bucketName, sm.buildKey(name),
		bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
			ContentType: "text/plain",
		})

	return err
}
