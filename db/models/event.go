package models

import (
	"time"
)

// Event is a dated calendar entry owned by exactly one user.
// Date is stored as caller-supplied text; ISO dates sort correctly
// under the lexicographic ordering the list query relies on.
type Event struct {
	ID        int64     `json:"id" bun:",pk,autoincrement"`
	UserID    int64     `json:"user_id" bun:",notnull"`
	User      *User     `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Date      string    `json:"date" bun:",notnull"`
	Title     string    `json:"title" bun:",notnull"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
