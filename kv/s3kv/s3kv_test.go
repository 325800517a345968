package s3kv_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contextvault/hnswkv/kv"
	"github.com/contextvault/hnswkv/kv/s3kv"
)

// fakeS3 is an in-memory stand-in for the AWS SDK S3 client, just enough of
// S3API to exercise Client without a real bucket.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(params.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3ClientGetSetRoundTrip(t *testing.T) {
	c := s3kv.New(newFakeS3(), "bucket", "ns", 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", []byte("v1")))

	v, ok, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), v)
}

func TestS3ClientGetMissingKeyIsNotFoundNotError(t *testing.T) {
	c := s3kv.New(newFakeS3(), "bucket", "ns", 0)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestS3ClientGetManySetManyRoundTrip(t *testing.T) {
	c := s3kv.New(newFakeS3(), "bucket", "ns", 2)
	ctx := context.Background()

	pairs := []kv.Pair{
		{Key: "a", Value: []byte("1")},
		{Key: "b", Value: []byte("2")},
		{Key: "c", Value: []byte("3")},
	}
	require.NoError(t, c.SetMany(ctx, pairs))

	values, err := c.GetMany(ctx, []string{"a", "b", "c", "missing"})
	require.NoError(t, err)
	require.Len(t, values, 4)
	assert.Equal(t, []byte("1"), values[0])
	assert.Equal(t, []byte("2"), values[1])
	assert.Equal(t, []byte("3"), values[2])
	assert.Nil(t, values[3])
}
