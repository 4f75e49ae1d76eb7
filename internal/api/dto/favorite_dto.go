package dto

// AddFavoriteRequest is the payload of POST /favorites/add-favorite.
type AddFavoriteRequest struct {
	Category string `json:"category"`
	ItemID   string `json:"item_id"`
}

// FavoritesResponse is the expanded favorites aggregate.
type FavoritesResponse struct {
	FavoriteID string           `json:"favorite_id"`
	Artists    []ArtistResponse `json:"artists"`
	Albums     []AlbumResponse  `json:"albums"`
	Tracks     []TrackResponse  `json:"tracks"`
}
