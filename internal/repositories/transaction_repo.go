package repositories

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"corteBack/internal/models"
)

type TransactionRepository struct {
	Client *firestore.Client
}

// Newest entries first, same order the caixa screen renders them in.
func (r *TransactionRepository) query(userID string) firestore.Query {
	return r.Client.Collection(transactionsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)
}

func (r *TransactionRepository) CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	ref, _, err := r.Client.Collection(transactionsCollection).Add(ctx, tx)
	if err != nil {
		return models.Transaction{}, err
	}
	tx.ID = ref.ID
	return tx, nil
}

func (r *TransactionRepository) GetTransactionsByUserID(ctx context.Context, userID string) ([]models.Transaction, error) {
	return decodeTransactions(r.query(userID).Documents(ctx))
}

func (r *TransactionRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	ref := r.Client.Collection(transactionsCollection).Doc(id)
	doc, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return models.ErrRecordNotFound
	}
	if err != nil {
		return err
	}

	var tx models.Transaction
	if err := doc.DataTo(&tx); err != nil {
		return err
	}
	if tx.UserID != userID {
		return models.ErrNotOwner
	}

	_, err = ref.Delete(ctx)
	return err
}

func (r *TransactionRepository) WatchTransactions(ctx context.Context, userID string, onUpdate func([]models.Transaction)) Unsubscribe {
	wctx, cancel := context.WithCancel(ctx)
	guard := newWatchGuard(cancel)
	snaps := r.query(userID).Snapshots(wctx)

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				return
			}
			list, err := decodeTransactions(snap.Documents)
			if err != nil {
				continue
			}
			guard.deliver(func() { onUpdate(list) })
		}
	}()

	return guard.unsubscribe()
}

func decodeTransactions(it *firestore.DocumentIterator) ([]models.Transaction, error) {
	txs := []models.Transaction{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var tx models.Transaction
		if err := doc.DataTo(&tx); err != nil {
			return nil, err
		}
		tx.ID = doc.Ref.ID
		txs = append(txs, tx)
	}
	return txs, nil
}
