package domain

import "time"

// Artist is a catalog performer.
type Artist struct {
	ID        int64
	PublicID  string
	Name      string
	Grammy    int
	Hidden    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
