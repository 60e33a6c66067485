package services

import (
	"context"
	"errors"
	"testing"

	"corteBack/internal/models"
	"corteBack/internal/repositories"
)

type fakeStockRepo struct {
	created []models.StockItem
	items   map[string]*models.StockItem
	adjusts int
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{items: make(map[string]*models.StockItem)}
}

func (f *fakeStockRepo) CreateItem(ctx context.Context, item models.StockItem) (models.StockItem, error) {
	item.ID = "item-1"
	f.created = append(f.created, item)
	f.items[item.ID] = &item
	return item, nil
}

func (f *fakeStockRepo) GetItemsByUserID(ctx context.Context, userID string) ([]models.StockItem, error) {
	out := []models.StockItem{}
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

// Mirrors the Firestore transaction: check the floor, then apply the delta.
func (f *fakeStockRepo) AdjustQuantity(ctx context.Context, userID, id string, delta int64) error {
	item, ok := f.items[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	if item.UserID != userID {
		return models.ErrNotOwner
	}
	if item.Quantity+delta < 0 {
		return models.ErrNegativeQuantity
	}
	item.Quantity += delta
	f.adjusts++
	return nil
}

func (f *fakeStockRepo) DeleteItem(ctx context.Context, userID, id string) error {
	delete(f.items, id)
	return nil
}

func (f *fakeStockRepo) WatchItems(ctx context.Context, userID string, onUpdate func([]models.StockItem)) repositories.Unsubscribe {
	return func() {}
}

func TestCreateItemValidation(t *testing.T) {
	cases := []struct {
		name     string
		itemName string
		quantity string
		wantErr  error
	}{
		{"empty name", "", "5", models.ErrEmptyField},
		{"empty quantity", "Pomada", "", models.ErrEmptyField},
		{"not a number", "Pomada", "cinco", models.ErrInvalidAmount},
		{"negative", "Pomada", "-2", models.ErrInvalidAmount},
		{"valid", "Pomada", "5", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeStockRepo()
			svc := &StockService{StockRepo: repo}

			item, err := svc.CreateItem(context.Background(), "uid-1", tc.itemName, tc.quantity)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v got %v", tc.wantErr, err)
				}
				if len(repo.created) != 0 {
					t.Fatalf("expected zero store writes, got %d", len(repo.created))
				}
				return
			}

			if err != nil {
				t.Fatalf("CreateItem: %v", err)
			}
			if item.Quantity != 5 {
				t.Fatalf("expected quantity 5 got %d", item.Quantity)
			}
		})
	}
}

func TestAdjustQuantity(t *testing.T) {
	repo := newFakeStockRepo()
	svc := &StockService{StockRepo: repo}

	item, err := svc.CreateItem(context.Background(), "uid-1", "Pomada", "1")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	// one "Adicionar" click
	if err := svc.AdjustQuantity(context.Background(), "uid-1", item.ID, 1); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if got := repo.items[item.ID].Quantity; got != 2 {
		t.Fatalf("expected quantity 2 got %d", got)
	}

	// back down to zero
	for i := 0; i < 2; i++ {
		if err := svc.AdjustQuantity(context.Background(), "uid-1", item.ID, -1); err != nil {
			t.Fatalf("decrement: %v", err)
		}
	}

	// "Remover" at zero: no write, quantity unchanged
	adjustsBefore := repo.adjusts
	err = svc.AdjustQuantity(context.Background(), "uid-1", item.ID, -1)
	if !errors.Is(err, models.ErrNegativeQuantity) {
		t.Fatalf("expected ErrNegativeQuantity got %v", err)
	}
	if repo.adjusts != adjustsBefore {
		t.Fatalf("expected no write at quantity 0")
	}
	if got := repo.items[item.ID].Quantity; got != 0 {
		t.Fatalf("expected quantity 0 got %d", got)
	}
}

func TestAdjustQuantityRejectsOtherDeltas(t *testing.T) {
	repo := newFakeStockRepo()
	svc := &StockService{StockRepo: repo}

	for _, delta := range []int64{0, 2, -5} {
		if err := svc.AdjustQuantity(context.Background(), "uid-1", "item-1", delta); !errors.Is(err, models.ErrInvalidDelta) {
			t.Fatalf("delta %d: expected ErrInvalidDelta got %v", delta, err)
		}
	}
	if repo.adjusts != 0 {
		t.Fatalf("expected no writes, got %d", repo.adjusts)
	}
}
