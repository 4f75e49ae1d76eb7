package domain

import "time"

// Album belongs to an artist, referenced by the artist's public id.
type Album struct {
	ID        int64
	PublicID  string
	ArtistID  string
	Name      string
	Year      int
	Hidden    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
