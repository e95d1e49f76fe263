package models

// Image records an uploaded image. The bytes live in object storage; only
// the resolved source URL is kept in the database.
type Image struct {
	ID        int64   `json:"id"`
	SourceURL *string `json:"source_url"`
}
