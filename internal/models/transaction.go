package models

import (
	"time"
)

// Transaction is a single cash-ledger entry. Amount is signed: positive for
// income, negative for expenses.
type Transaction struct {
	ID          string    `firestore:"-" json:"id"`
	UserID      string    `firestore:"userId" json:"user_id"`
	Description string    `firestore:"description" json:"description"`
	Amount      float64   `firestore:"amount" json:"amount"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
}
