package services

import (
	"context"
	"strconv"
	"strings"

	"corteBack/internal/models"
	"corteBack/internal/repositories"
)

type StockRepo interface {
	CreateItem(ctx context.Context, item models.StockItem) (models.StockItem, error)
	GetItemsByUserID(ctx context.Context, userID string) ([]models.StockItem, error)
	AdjustQuantity(ctx context.Context, userID, id string, delta int64) error
	DeleteItem(ctx context.Context, userID, id string) error
	WatchItems(ctx context.Context, userID string, onUpdate func([]models.StockItem)) repositories.Unsubscribe
}

type StockService struct {
	StockRepo StockRepo
}

func (s *StockService) CreateItem(ctx context.Context, userID, name, quantity string) (models.StockItem, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(quantity) == "" {
		return models.StockItem{}, models.ErrEmptyField
	}

	qty, err := strconv.ParseInt(strings.TrimSpace(quantity), 10, 64)
	if err != nil || qty < 0 {
		return models.StockItem{}, models.ErrInvalidAmount
	}

	return s.StockRepo.CreateItem(ctx, models.StockItem{
		UserID:   userID,
		Name:     name,
		Quantity: qty,
	})
}

func (s *StockService) GetItems(ctx context.Context, userID string) ([]models.StockItem, error) {
	return s.StockRepo.GetItemsByUserID(ctx, userID)
}

// AdjustQuantity moves the quantity one step up or down. The floor at zero is
// enforced again inside the repository transaction.
func (s *StockService) AdjustQuantity(ctx context.Context, userID, id string, delta int64) error {
	if delta != 1 && delta != -1 {
		return models.ErrInvalidDelta
	}
	return s.StockRepo.AdjustQuantity(ctx, userID, id, delta)
}

func (s *StockService) DeleteItem(ctx context.Context, userID, id string) error {
	return s.StockRepo.DeleteItem(ctx, userID, id)
}

func (s *StockService) WatchItems(ctx context.Context, userID string, onUpdate func([]models.StockItem)) repositories.Unsubscribe {
	return s.StockRepo.WatchItems(ctx, userID, onUpdate)
}
