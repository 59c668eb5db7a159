package dto

// LocationRequest carries the location stored on a session: either an
// explicit coordinate pair (both fields required together) or a free-text
// address to geocode.
type LocationRequest struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Address   string `json:"address"`
}

// ThemeRequest sets the session's display theme.
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// ToggleRequest cycles one cuisine through its selection states.
type ToggleRequest struct {
	Category string `json:"category"`
}

// ResolveRequest runs the hunt. Categories may be omitted, in which case the
// pool is derived from the session's stored location.
type ResolveRequest struct {
	Categories []string `json:"categories"`
}

// AutocompleteRequest is the body of the place autocomplete proxy endpoint.
type AutocompleteRequest struct {
	Input string `json:"input"`
}
