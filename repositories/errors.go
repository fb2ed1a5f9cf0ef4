package repositories

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")

	// ErrTransactionsUnsupported is returned when the deployment cannot run
	// multi-document transactions (standalone server).
	ErrTransactionsUnsupported = errors.New("transactions are not supported by this deployment")
)

// illegalOperationCode is what a standalone mongod answers when a command
// carries a transaction number.
const illegalOperationCode = 20

// IsTransactionUnsupported reports whether err is the server's signal that
// multi-document transactions are unavailable in the current topology.
func IsTransactionUnsupported(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTransactionsUnsupported) {
		return true
	}
	var se mongo.ServerError
	if errors.As(err, &se) && se.HasErrorCode(illegalOperationCode) {
		return true
	}
	return strings.Contains(err.Error(), "Transaction numbers are only allowed on a replica set member or mongos")
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
