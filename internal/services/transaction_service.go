package services

import (
	"context"
	"strconv"
	"strings"

	"corteBack/internal/models"
	"corteBack/internal/repositories"
)

type TransactionRepo interface {
	CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	GetTransactionsByUserID(ctx context.Context, userID string) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
	WatchTransactions(ctx context.Context, userID string, onUpdate func([]models.Transaction)) repositories.Unsubscribe
}

type TransactionService struct {
	TransactionRepo TransactionRepo
}

// CreateTransaction parses the amount the way the caixa form submits it: raw
// text, signed, dot or comma decimal separator.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID, description, amount string) (models.Transaction, error) {
	if strings.TrimSpace(description) == "" || strings.TrimSpace(amount) == "" {
		return models.Transaction{}, models.ErrEmptyField
	}

	value, err := parseAmount(amount)
	if err != nil {
		return models.Transaction{}, models.ErrInvalidAmount
	}

	return s.TransactionRepo.CreateTransaction(ctx, models.Transaction{
		UserID:      userID,
		Description: description,
		Amount:      value,
	})
}

func (s *TransactionService) GetTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.TransactionRepo.GetTransactionsByUserID(ctx, userID)
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id string) error {
	return s.TransactionRepo.DeleteTransaction(ctx, userID, id)
}

func (s *TransactionService) WatchTransactions(ctx context.Context, userID string, onUpdate func([]models.Transaction)) repositories.Unsubscribe {
	return s.TransactionRepo.WatchTransactions(ctx, userID, onUpdate)
}

func parseAmount(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	return strconv.ParseFloat(cleaned, 64)
}
