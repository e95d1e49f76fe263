package models

import "github.com/mkbraam/wishd/internal/validate"

// Field bounds shared by lists and items.
const (
	TitleMin       = 2
	TitleMax       = 256
	DescriptionMax = 4096
)

// List is a published wishlist. Lists are addressed externally by their
// opaque key; the numeric id never leaves the server. A private list is
// excluded from the public index and reachable only by presenting the exact
// key.
type List struct {
	ID          int64  `json:"-"`
	Key         string `json:"key"`
	IsPrivate   bool   `json:"is_private"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate reports every violated field rule, or nil.
func (l *List) Validate() error {
	return validate.Collect(
		validate.Length("title", l.Title, TitleMin, TitleMax,
			"Title must be between 2 and 256 characters"),
		validate.MaxLength("description", l.Description, DescriptionMax,
			"Description must be less than 4096 characters"),
	)
}

// Item is a single entry in a wishlist.
type Item struct {
	ID          int64  `json:"id"`
	ListID      int64  `json:"-"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate reports every violated field rule, or nil.
func (i *Item) Validate() error {
	return validate.Collect(
		validate.Min("list_id", i.ListID, 1, "Invalid list ID"),
		validate.Length("title", i.Title, TitleMin, TitleMax,
			"Title must be between 2 and 256 characters"),
		validate.MaxLength("description", i.Description, DescriptionMax,
			"Description must be less than 4096 characters"),
	)
}

// ListRequest is the JSON body for POST and PUT /api/v1/lists.
type ListRequest struct {
	IsPrivate   bool   `json:"is_private"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ItemRequest is the JSON body for POST and PUT under /api/v1/lists/{key}/items.
type ItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
