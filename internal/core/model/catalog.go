package model

// CatalogEntry is one static equipment listing. Icon is a symbolic icon
// name the client maps to its own artwork.
type CatalogEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
}
