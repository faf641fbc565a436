package models

import (
	"time"
)

// User is a registered calendar participant. Identity is the network
// address the registration request came from; both the address and the
// chosen display name are unique and immutable once set.
type User struct {
	ID        int64     `json:"id" bun:",pk,autoincrement"`
	IP        string    `json:"-" bun:",unique,notnull"`
	Name      string    `json:"name" bun:",unique,notnull"`
	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
