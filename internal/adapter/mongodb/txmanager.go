package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// TxManager runs units of work inside a session transaction when enabled.
// Transactions require a replica set; without them fn runs directly and
// check-then-write sequences are not atomic.
type TxManager struct {
	client  *mongo.Client
	enabled bool
}

// NewTxManager creates a TxManager. enabled mirrors mongo.transactions.
func NewTxManager(c *Client, enabled bool) *TxManager {
	return &TxManager{client: c.client, enabled: enabled}
}

// RunInTx executes fn within a transaction. A nested call joins the
// surrounding session.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(context.Background())

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	})
	return err
}
