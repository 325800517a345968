// Package ddbkv implements kv.Client against Amazon DynamoDB.
//
// DynamoDB's own limits are the literal "backend whose per-transaction
// payload is bounded" the core's Adapter is written against: BatchGetItem
// accepts at most 100 keys and BatchWriteItem at most 25 items per call.
// Client reports both as kv.SizeLimitError so kv.Adapter's bisection
// kicks in transparently; single-item operations that exceed the 400KB
// DynamoDB item limit propagate as a plain error, since there is nothing
// smaller to split into.
//
package ddbkv

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/contextvault/hnswkv/kv"
)

// DynamoDB's hard limits, used to decide when to report kv.SizeLimitError
// rather than attempting the call.
const (
	maxBatchGetItems   = 100
	maxBatchWriteItems = 25
)

// DDBClient is the subset of the DynamoDB SDK Client this package needs.
// Narrowed to an interface so tests can substitute a fake.
type DDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	BatchGetItem(ctx context.Context, params *dynamodb.BatchGetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// Client implements kv.Client over a single DynamoDB table with a string
// partition key "pk" and a binary attribute "v".
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name hnswkv \
//	  --attribute-definitions AttributeName=pk,AttributeType=S \
//	  --key-schema AttributeName=pk,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
type Client struct {
	ddb   DDBClient
	table string
}

// New creates a DynamoDB-backed Client.
func New(ddb DDBClient, table string) *Client {
	return &Client{ddb: ddb, table: table}
}

const pkAttr = "pk"
const valAttr = "v"

// Get implements kv.Client.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	out, err := c.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.table),
		Key: map[string]types.AttributeValue{
			pkAttr: &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("ddbkv: get %q: %w", key, err)
	}
	if out.Item == nil {
		return nil, false, nil
	}
	v, ok := out.Item[valAttr].(*types.AttributeValueMemberB)
	if !ok {
		return nil, false, fmt.Errorf("ddbkv: get %q: missing or malformed %q attribute", key, valAttr)
	}
	return v.Value, true, nil
}

// GetMany implements kv.Client, reporting kv.SizeLimitError above the
// BatchGetItem item-count limit rather than attempting a call DynamoDB
// would reject.
func (c *Client) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	if len(keys) > maxBatchGetItems {
		return nil, &kv.SizeLimitError{Operation: "get_many", Count: len(keys)}
	}

	keyAttrs := make([]map[string]types.AttributeValue, len(keys))
	for i, k := range keys {
		keyAttrs[i] = map[string]types.AttributeValue{pkAttr: &types.AttributeValueMemberS{Value: k}}
	}

	out, err := c.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
		RequestItems: map[string]types.KeysAndAttributes{
			c.table: {Keys: keyAttrs},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ddbkv: batch_get_item: %w", err)
	}

	found := make(map[string][]byte, len(out.Responses[c.table]))
	for _, item := range out.Responses[c.table] {
		pk, ok := item[pkAttr].(*types.AttributeValueMemberS)
		if !ok {
			continue
		}
		v, ok := item[valAttr].(*types.AttributeValueMemberB)
		if !ok {
			continue
		}
		found[pk.Value] = v.Value
	}

	values := make([][]byte, len(keys))
	for i, k := range keys {
		values[i] = found[k]
	}
	return values, nil
}

// Set implements kv.Client.
func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	_, err := c.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item: map[string]types.AttributeValue{
			pkAttr:  &types.AttributeValueMemberS{Value: key},
			valAttr: &types.AttributeValueMemberB{Value: value},
		},
	})
	if err != nil {
		return fmt.Errorf("ddbkv: set %q: %w", key, err)
	}
	return nil
}

// SetMany implements kv.Client, reporting kv.SizeLimitError above the
// BatchWriteItem item-count limit.
func (c *Client) SetMany(ctx context.Context, pairs []kv.Pair) error {
	if len(pairs) == 0 {
		return nil
	}
	if len(pairs) > maxBatchWriteItems {
		return &kv.SizeLimitError{Operation: "set_many", Count: len(pairs)}
	}

	reqs := make([]types.WriteRequest, len(pairs))
	for i, p := range pairs {
		reqs[i] = types.WriteRequest{
			PutRequest: &types.PutRequest{
				Item: map[string]types.AttributeValue{
					pkAttr:  &types.AttributeValueMemberS{Value: p.Key},
					valAttr: &types.AttributeValueMemberB{Value: p.Value},
				},
			},
		}
	}

	out, err := c.ddb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{c.table: reqs},
	})
	if err != nil {
		var validation *types.ValidationException
		if errors.As(err, &validation) {
			return &kv.SizeLimitError{Operation: "set_many", Count: len(pairs), Cause: err}
		}
		return fmt.Errorf("ddbkv: batch_write_item: %w", err)
	}
	if len(out.UnprocessedItems) > 0 {
		return fmt.Errorf("ddbkv: batch_write_item: %d unprocessed items", len(out.UnprocessedItems[c.table]))
	}
	return nil
}
