// README: JSON blob persistence for stage results (MinIO/S3 and in-memory).
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"lambdatrip/internal/logger"
)

const keyPrefix = "landmark_analysis/"

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrMissingConfig  = errors.New("storage endpoint and credentials are required")
)

// Store reads and writes JSON documents by key.
type Store interface {
	PutJSON(ctx context.Context, key string, v any) error
	GetJSON(ctx context.Context, key string, v any) error
}

// AnalysisKey names the stage-1 record written at t.
func AnalysisKey(t time.Time) string {
	return keyPrefix + t.UTC().Format("20060102_150405") + "_analysis.json"
}

// FinalKey names the stage-2 report written at t.
func FinalKey(t time.Time) string {
	return keyPrefix + t.UTC().Format("20060102_150405") + "_final.json"
}

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

type BlobStore struct {
	client *minio.Client
	bucket string
	region string
	log    *logger.Logger
}

func NewBlobStore(opts Options, log *logger.Logger) (*BlobStore, error) {
	if opts.Endpoint == "" || opts.AccessKey == "" || opts.SecretKey == "" || opts.Bucket == "" {
		return nil, ErrMissingConfig
	}
	if log == nil {
		log = logger.Nop()
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	log.Info("connected to object storage", "endpoint", opts.Endpoint, "bucket", opts.Bucket)
	return &BlobStore{client: client, bucket: opts.Bucket, region: opts.Region, log: log}, nil
}

func (s *BlobStore) Bucket() string { return s.bucket }

// EnsureBucket creates the bucket when it does not exist yet.
func (s *BlobStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("make bucket: %w", err)
	}
	return nil
}

func (s *BlobStore) PutJSON(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	s.log.Info("stored object", "bucket", s.bucket, "key", key)
	return nil
}

func (s *BlobStore) GetJSON(ctx context.Context, key string, v any) error {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	defer obj.Close()

	// GetObject is lazy; a missing key surfaces on the first read.
	if err := json.NewDecoder(obj).Decode(v); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return fmt.Errorf("get %s: %w", key, ErrObjectNotFound)
		}
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// MemoryStore keeps documents in process. Used for local runs and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (m *MemoryStore) PutJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) GetJSON(ctx context.Context, key string, v any) error {
	m.mu.RLock()
	data, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("get %s: %w", key, ErrObjectNotFound)
	}
	return json.Unmarshal(data, v)
}

// Keys lists stored keys in no particular order.
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}
