// Package dynamodb mirrors the account snapshot into a DynamoDB table.
package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/account-ledger/pkg/storage"
)

//go:generate mockery --name DynamoDBAPI --output ./mocks

// DefaultAccountKey is the partition key used when none is configured.
const DefaultAccountKey = "cuenta"

// DynamoDBAPI is the subset of the DynamoDB client used by Store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Store implements storage.Store with one item per account key.
type Store struct {
	Client     DynamoDBAPI
	TableName  string
	AccountKey string
}

// New creates a new Store. An empty accountKey falls back to DefaultAccountKey.
func New(client DynamoDBAPI, tableName, accountKey string) *Store {
	if accountKey == "" {
		accountKey = DefaultAccountKey
	}
	return &Store{
		Client:     client,
		TableName:  tableName,
		AccountKey: accountKey,
	}
}

// Make sure we conform to the interface
var _ storage.Store = (*Store)(nil)
