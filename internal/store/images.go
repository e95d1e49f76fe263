package store

import (
	"context"
	"database/sql"

	"github.com/mkbraam/wishd/internal/models"
)

// CreateImage records an uploaded image's resolved source URL.
func (s *SQLStore) CreateImage(ctx context.Context, sourceURL *string) (*models.Image, error) {
	var (
		out models.Image
		url sql.NullString
	)
	err := s.db.QueryRowContext(ctx, s.q(
		`INSERT INTO images (source_url) VALUES (?) RETURNING id, source_url`),
		sourceURL,
	).Scan(&out.ID, &url)
	if err != nil {
		return nil, classify("create image", err)
	}
	if url.Valid {
		out.SourceURL = &url.String
	}
	return &out, nil
}

// GetImage returns the image with the given id, or ErrNotFound.
func (s *SQLStore) GetImage(ctx context.Context, id int64) (*models.Image, error) {
	var (
		img models.Image
		url sql.NullString
	)
	err := s.db.QueryRowContext(ctx, s.q(
		`SELECT id, source_url FROM images WHERE id = ?`), id,
	).Scan(&img.ID, &url)
	if err != nil {
		return nil, classify("get image", err)
	}
	if url.Valid {
		img.SourceURL = &url.String
	}
	return &img, nil
}

// DeleteImage removes an image row.
func (s *SQLStore) DeleteImage(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM images WHERE id = ?`), id)
	if err != nil {
		return classify("delete image", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
