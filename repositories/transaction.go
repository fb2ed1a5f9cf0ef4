package repositories

import (
	"context"
	"fmt"
	"sync"

	"ems-project/backend/logging"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TxRunner runs callbacks inside MongoDB multi-document transactions.
type TxRunner struct {
	client *mongo.Client
	probe  func(ctx context.Context) (bool, error)

	mu        sync.Mutex
	supported *bool
}

func NewTxRunner(client *mongo.Client) *TxRunner {
	r := &TxRunner{client: client}
	r.probe = r.hello
	return r
}

type helloResult struct {
	SetName string `bson:"setName"`
	Msg     string `bson:"msg"`
}

// hello reports whether the deployment is a replica set member or a mongos
// router. A standalone server cannot run transactions.
func (r *TxRunner) hello(ctx context.Context) (bool, error) {
	var res helloResult
	if err := r.client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&res); err != nil {
		return false, err
	}
	return res.SetName != "" || res.Msg == "isdbgrid", nil
}

// SupportsTransactions probes the deployment topology until one probe
// succeeds and caches that answer. The probe runs without holding the lock,
// so concurrent first callers may each probe. A failed probe answers true
// so the caller still tries a transaction and relies on
// ErrTransactionsUnsupported.
func (r *TxRunner) SupportsTransactions(ctx context.Context) bool {
	r.mu.Lock()
	cached := r.supported
	r.mu.Unlock()
	if cached != nil {
		return *cached
	}

	ok, err := r.probe(ctx)
	if err != nil {
		logging.Logger.Warnf("Event ID: DB_TOPOLOGY_PROBE_FAILED, Description: Could not determine transaction support: %v", err)
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.supported == nil {
		r.supported = &ok
		logging.Logger.Infof("Event ID: DB_TOPOLOGY_PROBED, Description: Transaction support detected: %t", ok)
	}
	return *r.supported
}

// WithTransaction runs fn in a transaction on a fresh session. The session
// is ended on every return path. fn must issue its operations with the ctx
// it receives so they join the transaction.
func (r *TxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(context.WithoutCancel(ctx))

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil {
		if IsTransactionUnsupported(err) {
			r.markUnsupported()
			return fmt.Errorf("%w: %v", ErrTransactionsUnsupported, err)
		}
		return err
	}
	return nil
}

func (r *TxRunner) markUnsupported() {
	r.mu.Lock()
	defer r.mu.Unlock()
	no := false
	r.supported = &no
}
