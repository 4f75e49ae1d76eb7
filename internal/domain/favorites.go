package domain

import (
	"slices"
	"time"
)

// Favorites is the per-account aggregate of favorited catalog public ids.
// Each list behaves as a set: an id appears at most once per kind.
type Favorites struct {
	ID        string
	AccountID string
	Artists   []string
	Albums    []string
	Tracks    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewFavorites returns an empty aggregate owned by accountID.
func NewFavorites(id, accountID string) *Favorites {
	return &Favorites{
		ID:        id,
		AccountID: accountID,
		Artists:   []string{},
		Albums:    []string{},
		Tracks:    []string{},
	}
}

// IDs returns the set for kind.
func (f *Favorites) IDs(kind ResourceKind) []string {
	switch kind {
	case KindArtist:
		return f.Artists
	case KindAlbum:
		return f.Albums
	case KindTrack:
		return f.Tracks
	}
	return nil
}

func (f *Favorites) setIDs(kind ResourceKind, ids []string) {
	switch kind {
	case KindArtist:
		f.Artists = ids
	case KindAlbum:
		f.Albums = ids
	case KindTrack:
		f.Tracks = ids
	}
}

// Contains reports whether id is in the set for kind.
func (f *Favorites) Contains(kind ResourceKind, id string) bool {
	return slices.Contains(f.IDs(kind), id)
}

// Add inserts id into the set for kind. It reports false when id was already present.
func (f *Favorites) Add(kind ResourceKind, id string) bool {
	if f.Contains(kind, id) {
		return false
	}
	f.setIDs(kind, append(f.IDs(kind), id))
	return true
}

// Remove deletes the first occurrence of id, searching artists, albums then tracks.
func (f *Favorites) Remove(id string) (ResourceKind, bool) {
	for _, kind := range ResourceKinds {
		ids := f.IDs(kind)
		if idx := slices.Index(ids, id); idx >= 0 {
			f.setIDs(kind, slices.Delete(slices.Clone(ids), idx, idx+1))
			return kind, true
		}
	}
	return "", false
}

// Len returns the total number of favorited ids.
func (f *Favorites) Len() int {
	return len(f.Artists) + len(f.Albums) + len(f.Tracks)
}

// Clone returns a deep copy safe to mutate independently.
func (f *Favorites) Clone() *Favorites {
	clone := *f
	clone.Artists = append([]string{}, f.Artists...)
	clone.Albums = append([]string{}, f.Albums...)
	clone.Tracks = append([]string{}, f.Tracks...)
	return &clone
}
