package models

import "time"

// AllocatorState is the single-row cursor of the account code allocator.
type AllocatorState struct {
	Letter    string    `db:"letter"`
	Number    int       `db:"number"`
	UpdatedAt time.Time `db:"updated_at"`
}
