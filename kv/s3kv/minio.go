package s3kv

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"

	"github.com/contextvault/hnswkv/kv"
)

// MinioClient implements kv.Client against MinIO or any S3-compatible
// object store via the minio-go SDK, paralleling Client's AWS-SDK-backed
// implementation so self-hosted deployments aren't tied to AWS.
type MinioClient struct {
	client     *minio.Client
	bucket     string
	prefix     string
	fanoutSize int
}

// NewMinio creates a MinIO-backed Client.
func NewMinio(client *minio.Client, bucket, rootPrefix string, fanoutConcurrency int) *MinioClient {
	if fanoutConcurrency <= 0 {
		fanoutConcurrency = 8
	}
	return &MinioClient{client: client, bucket: bucket, prefix: rootPrefix, fanoutSize: fanoutConcurrency}
}

func (c *MinioClient) objectKey(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + "/" + key
}

// Get implements kv.Client.
func (c *MinioClient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, c.objectKey(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, false, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set implements kv.Client.
func (c *MinioClient) Set(ctx context.Context, key string, value []byte) error {
	if len(value) > maxObjectSize {
		return &kv.SizeLimitError{Operation: "set", Count: 1}
	}
	_, err := c.client.PutObject(ctx, c.bucket, c.objectKey(key), bytes.NewReader(value), int64(len(value)), minio.PutObjectOptions{})
	return err
}

// GetMany implements kv.Client by fanning out bounded-concurrency Gets.
func (c *MinioClient) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	values := make([][]byte, len(keys))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.fanoutSize)

	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			v, ok, err := c.Get(ctx, key)
			if err != nil {
				return err
			}
			if ok {
				values[i] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}

// SetMany implements kv.Client by fanning out bounded-concurrency Sets.
func (c *MinioClient) SetMany(ctx context.Context, pairs []kv.Pair) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.fanoutSize)

	for _, p := range pairs {
		p := p
		g.Go(func() error {
			return c.Set(ctx, p.Key, p.Value)
		})
	}
	return g.Wait()
}
