package models

import (
	"time"
)

type StockItem struct {
	ID        string    `firestore:"-" json:"id"`
	UserID    string    `firestore:"userId" json:"user_id"`
	Name      string    `firestore:"name" json:"name"`
	Quantity  int64     `firestore:"quantity" json:"quantity"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
}
