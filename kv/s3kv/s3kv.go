// Package s3kv implements kv.Client against an S3-compatible object store,
// one object per key. S3 has no native batch-get/batch-put API, so GetMany
// and SetMany fan out with bounded concurrency instead of a single round
// trip; this is still useful to the core because S3's 5GiB single-PUT limit
// and per-request payload ceilings can still surface as a size error on an
// individual object within the fan-out, which Client reports as
// kv.SizeLimitError.
package s3kv

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/sync/errgroup"

	"github.com/contextvault/hnswkv/kv"
)

// S3API is the subset of the AWS SDK S3 client this package needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// maxObjectSize is S3's single-PUT object size ceiling (5 GiB); values above
// this are reported as kv.SizeLimitError rather than attempted.
const maxObjectSize = 5 * 1024 * 1024 * 1024

// multipartThreshold is the value size above which Set routes through the
// multipart Uploader instead of a single PutObject call. LayerNode/Point
// payloads in this domain rarely approach it, but a high-dimension vector
// batch encoded with metadata can.
const multipartThreshold = 16 * 1024 * 1024

// Client implements kv.Client over S3, storing each key as a single object.
type Client struct {
	s3         S3API
	uploader   *manager.Uploader
	bucket     string
	prefix     string
	fanoutSize int
}

// New creates an S3-backed Client. fanoutConcurrency bounds the number of
// concurrent per-object requests GetMany/SetMany issue; 0 uses a default of 8.
// s3Client must also satisfy the manager.UploadAPIClient interface (the real
// *s3.Client does) so values above multipartThreshold can use the multipart
// Uploader instead of a single PutObject call.
func New(s3Client S3API, bucket, rootPrefix string, fanoutConcurrency int) *Client {
	if fanoutConcurrency <= 0 {
		fanoutConcurrency = 8
	}
	c := &Client{s3: s3Client, bucket: bucket, prefix: rootPrefix, fanoutSize: fanoutConcurrency}
	if uploadClient, ok := s3Client.(manager.UploadAPIClient); ok {
		c.uploader = manager.NewUploader(uploadClient)
	}
	return c
}

func (c *Client) objectKey(key string) string {
	return path.Join(c.prefix, key)
}

// Get implements kv.Client.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.objectKey(key)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set implements kv.Client.
func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	if len(value) > maxObjectSize {
		return &kv.SizeLimitError{Operation: "set", Count: 1}
	}
	if c.uploader != nil && len(value) > multipartThreshold {
		_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(c.bucket),
			Key:    aws.String(c.objectKey(key)),
			Body:   bytes.NewReader(value),
		})
		return err
	}
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.objectKey(key)),
		Body:   bytes.NewReader(value),
	})
	return err
}

// GetMany implements kv.Client by fanning out bounded-concurrency Gets.
// This never returns kv.SizeLimitError: S3 imposes no batch-count limit,
// and the per-object size limit is checked only by Set.
func (c *Client) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
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
func (c *Client) SetMany(ctx context.Context, pairs []kv.Pair) error {
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
