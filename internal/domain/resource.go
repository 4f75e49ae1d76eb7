package domain

import "strings"

// ResourceKind names a catalog collection.
type ResourceKind string

const (
	KindArtist ResourceKind = "artist"
	KindAlbum  ResourceKind = "album"
	KindTrack  ResourceKind = "track"
)

// ResourceKinds lists every kind in favorites search order.
var ResourceKinds = []ResourceKind{KindArtist, KindAlbum, KindTrack}

// ParseResourceKind accepts the singular kind name, case-insensitively.
func ParseResourceKind(value string) (ResourceKind, bool) {
	kind := ResourceKind(strings.ToLower(strings.TrimSpace(value)))
	switch kind {
	case KindArtist, KindAlbum, KindTrack:
		return kind, true
	}
	return "", false
}
