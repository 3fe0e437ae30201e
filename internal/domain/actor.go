package domain

import "time"

// Actor is a read-only projection of the external users table. The ledger
// never writes actors; they are looked up only to enrich listings with
// display names.
type Actor struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
