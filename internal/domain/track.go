package domain

import "time"

// Track belongs to an artist and an album, both by public id.
type Track struct {
	ID        int64
	PublicID  string
	ArtistID  string
	AlbumID   string
	Name      string
	Duration  int
	Hidden    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
