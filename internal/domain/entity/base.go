package entity

import "time"

// Base is a physical location holding asset stock. Immutable once
// referenced by any ledger event, except for rename.
type Base struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
