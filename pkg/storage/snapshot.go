package storage

// SnapshotVersion is the current schema version of Snapshot.
const SnapshotVersion = 1

// Snapshot is the plain persisted form of an account.
// Balance is never stored here; it is derived from Movements on load.
type Snapshot struct {
	Version   int              `dynamodbav:"version"`
	AccountID string           `dynamodbav:"account_id"`
	Owner     OwnerRecord      `dynamodbav:"owner"`
	Movements []MovementRecord `dynamodbav:"movements"`
}

// OwnerRecord holds the owner fields of a snapshot.
type OwnerRecord struct {
	Name       string `dynamodbav:"name"`
	NationalID string `dynamodbav:"national_id"`
	Age        int    `dynamodbav:"age"`
}

// MovementRecord holds one movement. Amount is a decimal string, Timestamp is unix seconds.
type MovementRecord struct {
	ID        string `dynamodbav:"id"`
	Kind      int    `dynamodbav:"kind"`
	Amount    string `dynamodbav:"amount"`
	Timestamp int64  `dynamodbav:"timestamp"`
}
