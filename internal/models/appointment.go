package models

import (
	"time"
)

type Appointment struct {
	ID          string    `firestore:"-" json:"id"`
	UserID      string    `firestore:"userId" json:"user_id"`
	Description string    `firestore:"description" json:"description"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
}
