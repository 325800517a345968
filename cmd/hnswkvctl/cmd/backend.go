package cmd

import (
	"context"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/contextvault/hnswkv/hnsw"
	"github.com/contextvault/hnswkv/index"
	"github.com/contextvault/hnswkv/kv"
	"github.com/contextvault/hnswkv/kv/ddbkv"
	"github.com/contextvault/hnswkv/kv/memkv"
	"github.com/contextvault/hnswkv/kv/s3kv"
)

var memoryBackend = memkv.New() // shared across subcommands within one process invocation

func openIndex(ctx context.Context) (*index.Index, error) {
	client, err := newClient(ctx)
	if err != nil {
		return nil, err
	}
	cfg := hnsw.DefaultConfig()
	cfg.Dimension = dimensionFlag
	return index.Open(ctx, namespaceFlag, cfg, client, index.WithLogger(nil))
}

func newClient(ctx context.Context) (kv.Client, error) {
	switch backendFlag {
	case "memory", "":
		return memoryBackend, nil
	case "dynamodb":
		table := os.Getenv("HNSWKV_DDB_TABLE")
		if table == "" {
			return nil, fmt.Errorf("HNSWKV_DDB_TABLE must be set for --backend=dynamodb")
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return ddbkv.New(dynamodb.NewFromConfig(awsCfg), table), nil
	case "s3":
		bucket := os.Getenv("HNSWKV_S3_BUCKET")
		if bucket == "" {
			return nil, fmt.Errorf("HNSWKV_S3_BUCKET must be set for --backend=s3")
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return s3kv.New(s3.NewFromConfig(awsCfg), bucket, os.Getenv("HNSWKV_S3_PREFIX"), 0), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backendFlag)
	}
}
