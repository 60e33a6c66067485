package repositories

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"corteBack/internal/models"
)

type StockRepository struct {
	Client *firestore.Client
}

func (r *StockRepository) query(userID string) firestore.Query {
	return r.Client.Collection(stockCollection).Where("userId", "==", userID)
}

func (r *StockRepository) CreateItem(ctx context.Context, item models.StockItem) (models.StockItem, error) {
	ref, _, err := r.Client.Collection(stockCollection).Add(ctx, item)
	if err != nil {
		return models.StockItem{}, err
	}
	item.ID = ref.ID
	return item, nil
}

func (r *StockRepository) GetItemsByUserID(ctx context.Context, userID string) ([]models.StockItem, error) {
	return decodeStockItems(r.query(userID).Documents(ctx))
}

// AdjustQuantity applies the delta as a server-side atomic increment. The read
// and the floor check run inside a transaction, so two concurrent decrements
// cannot drive the quantity negative.
func (r *StockRepository) AdjustQuantity(ctx context.Context, userID, id string, delta int64) error {
	ref := r.Client.Collection(stockCollection).Doc(id)
	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return models.ErrRecordNotFound
		}
		if err != nil {
			return err
		}

		var item models.StockItem
		if err := doc.DataTo(&item); err != nil {
			return err
		}
		if item.UserID != userID {
			return models.ErrNotOwner
		}
		if item.Quantity+delta < 0 {
			return models.ErrNegativeQuantity
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "quantity", Value: firestore.Increment(delta)},
		})
	})
}

func (r *StockRepository) DeleteItem(ctx context.Context, userID, id string) error {
	ref := r.Client.Collection(stockCollection).Doc(id)
	doc, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return models.ErrRecordNotFound
	}
	if err != nil {
		return err
	}

	var item models.StockItem
	if err := doc.DataTo(&item); err != nil {
		return err
	}
	if item.UserID != userID {
		return models.ErrNotOwner
	}

	_, err = ref.Delete(ctx)
	return err
}

func (r *StockRepository) WatchItems(ctx context.Context, userID string, onUpdate func([]models.StockItem)) Unsubscribe {
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
			list, err := decodeStockItems(snap.Documents)
			if err != nil {
				continue
			}
			guard.deliver(func() { onUpdate(list) })
		}
	}()

	return guard.unsubscribe()
}

func decodeStockItems(it *firestore.DocumentIterator) ([]models.StockItem, error) {
	items := []models.StockItem{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var item models.StockItem
		if err := doc.DataTo(&item); err != nil {
			return nil, err
		}
		item.ID = doc.Ref.ID
		items = append(items, item)
	}
	return items, nil
}
