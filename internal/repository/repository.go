// Package repository wraps the MongoDB collections behind narrow interfaces.
// Services depend on these interfaces, not on the driver, enabling clean unit
// testing via in-memory stubs. All methods honor a session-carrying context:
// when called inside TxRunner.WithTransaction the writes join that
// transaction.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound maps mongo.ErrNoDocuments for point reads.
	ErrNotFound = errors.New("document not found")
	// ErrNoMatch is returned by conditional updates whose filter matched
	// nothing — the caller decides whether that means a missing document,
	// insufficient stock, or a lost optimistic-lock race.
	ErrNoMatch = errors.New("conditional update matched no document")
)

// TxRunner executes fn inside a single multi-document transaction. The
// context passed to fn carries the session; repository calls made with it are
// atomic as a group. The driver retries transient transaction errors
// internally.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type mongoTxRunner struct{ client *mongo.Client }

func NewTxRunner(client *mongo.Client) TxRunner { return &mongoTxRunner{client: client} }

func (r *mongoTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
