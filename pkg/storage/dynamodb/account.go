package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/account-ledger/pkg/mapping"
	"github.com/chris/account-ledger/pkg/storage"
)

// accountItem is the table layout: the snapshot flattened under the partition
// key, plus a denormalized balance for readers that do not replay movements.
type accountItem struct {
	Key string `dynamodbav:"pk"`
	storage.Snapshot
	Balance   string    `dynamodbav:"balance"`
	UpdatedAt time.Time `dynamodbav:"updated_at"`
}

// Save replaces the account item with snap.
func (s *Store) Save(ctx context.Context, snap storage.Snapshot) error {
	account, err := mapping.FromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("refusing to mirror invalid snapshot: %w", err)
	}

	item := accountItem{
		Key:       s.AccountKey,
		Snapshot:  snap,
		Balance:   account.Balance().String(),
		UpdatedAt: time.Now().UTC(),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal account item: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.TableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put account item in DynamoDB: %w", err)
	}
	return nil
}

// Load reads the account item back as a snapshot.
func (s *Store) Load(ctx context.Context) (storage.Snapshot, error) {
	item, err := s.getItem(ctx)
	if err != nil {
		return storage.Snapshot{}, err
	}
	return item.Snapshot, nil
}

func (s *Store) getItem(ctx context.Context) (*accountItem, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"pk": s.AccountKey})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account key: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.TableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get account item from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("%w: account %s", storage.ErrNotFound, s.AccountKey)
	}

	var item accountItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal account item: %v", storage.ErrCorrupt, err)
	}
	return &item, nil
}
