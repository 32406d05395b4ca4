// Package catalog serves the static equipment listing and the links that
// open each entry in the detail view.
package catalog

import (
	"net/url"
	"strings"

	"github.com/agenthands/labscan/internal/apperr"
	"github.com/agenthands/labscan/internal/core/model"
)

// DetailPathPrefix is the route that renders one piece of equipment.
const DetailPathPrefix = "/equipment/"

// All returns a copy of every entry in display order.
func All() []model.CatalogEntry {
	out := make([]model.CatalogEntry, len(entries))
	copy(out, entries)
	return out
}

// Categories lists categories in the order they first appear.
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}

// ByCategory filters entries, matching the category case-insensitively.
func ByCategory(category string) []model.CatalogEntry {
	var out []model.CatalogEntry
	for _, e := range entries {
		if strings.EqualFold(e.Category, category) {
			out = append(out, e)
		}
	}
	return out
}

// Find looks an entry up by name, ignoring case and surrounding space.
func Find(name string) (model.CatalogEntry, error) {
	name = strings.TrimSpace(name)
	for _, e := range entries {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return model.CatalogEntry{}, apperr.NotFound("no catalog entry named %q", name)
}

// Ref is what travels in a detail link.
type Ref struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// RefOf picks the link fields of a catalog entry.
func RefOf(e model.CatalogEntry) Ref {
	return Ref{Name: e.Name, Description: e.Description, Category: e.Category}
}

// Link renders the detail URL for r. Empty description or category are
// left out of the query string.
func Link(r Ref) string {
	q := url.Values{}
	if r.Description != "" {
		q.Set("description", r.Description)
	}
	if r.Category != "" {
		q.Set("category", r.Category)
	}

	link := DetailPathPrefix + url.PathEscape(r.Name)
	if len(q) > 0 {
		link += "?" + q.Encode()
	}
	return link
}

// ParseLink is the inverse of Link.
func ParseLink(link string) (Ref, error) {
	u, err := url.Parse(link)
	if err != nil {
		return Ref{}, apperr.WrapValidation(err, "parse detail link")
	}

	escaped, ok := strings.CutPrefix(u.EscapedPath(), DetailPathPrefix)
	if !ok || escaped == "" || strings.Contains(escaped, "/") {
		return Ref{}, apperr.Validation("not a detail link: %s", link)
	}
	name, err := url.PathUnescape(escaped)
	if err != nil {
		return Ref{}, apperr.WrapValidation(err, "decode equipment name")
	}

	q := u.Query()
	return Ref{
		Name:        name,
		Description: q.Get("description"),
		Category:    q.Get("category"),
	}, nil
}

// Listing is one rendered catalog card.
type Listing struct {
	model.CatalogEntry
	Link string `json:"link"`
}

// Render produces exactly one listing per entry.
func Render(list []model.CatalogEntry) []Listing {
	out := make([]Listing, 0, len(list))
	for _, e := range list {
		out = append(out, Listing{CatalogEntry: e, Link: Link(RefOf(e))})
	}
	return out
}
