package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/account-ledger/pkg/storage"
	"github.com/chris/account-ledger/pkg/storage/dynamodb/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReconcile(t *testing.T) {
	snap := sampleSnapshot()

	t.Run("Match", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: itemFor(t, snap, "59.50")}, nil)

		report, err := New(mockClient, "ledger", "").Reconcile(context.Background())

		require.NoError(t, err)
		assert.True(t, report.Match)
		assert.Equal(t, 2, report.Movements)
		assert.Equal(t, snap.AccountID, report.AccountID)
		assert.True(t, report.Derived.Equal(decimal.RequireFromString("59.5")))
	})

	t.Run("Mismatch", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: itemFor(t, snap, "100")}, nil)

		report, err := New(mockClient, "ledger", "").Reconcile(context.Background())

		require.NoError(t, err)
		assert.False(t, report.Match)
		assert.True(t, report.Stored.Equal(decimal.NewFromInt(100)))
	})

	t.Run("Unreadable Balance", func(t *testing.T) {
		mockClient := mocks.NewDynamoDBAPI(t)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: itemFor(t, snap, "")}, nil)

		report, err := New(mockClient, "ledger", "").Reconcile(context.Background())

		require.NoError(t, err)
		assert.False(t, report.Match)
	})

	t.Run("Broken Movement Log", func(t *testing.T) {
		broken := snap
		broken.Movements = append([]storage.MovementRecord(nil), snap.Movements...)
		broken.Movements[1].Amount = "1000"
		mockClient := mocks.NewDynamoDBAPI(t)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: itemFor(t, broken, "0")}, nil)

		_, err := New(mockClient, "ledger", "").Reconcile(context.Background())

		assert.ErrorIs(t, err, storage.ErrCorrupt)
	})
}
