package store

import (
	"context"

	"github.com/mkbraam/wishd/internal/models"
)

const itemColumns = "id, list_id, title, description"

// CreateItem validates and inserts an item into a list.
func (s *SQLStore) CreateItem(ctx context.Context, listID int64, title, description string) (*models.Item, error) {
	item := &models.Item{ListID: listID, Title: title, Description: description}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	var out models.Item
	err := s.db.QueryRowContext(ctx, s.q(
		`INSERT INTO items (list_id, title, description)
		 VALUES (?, ?, ?)
		 RETURNING `+itemColumns),
		item.ListID, item.Title, item.Description,
	).Scan(&out.ID, &out.ListID, &out.Title, &out.Description)
	if err != nil {
		return nil, classify("create item", err)
	}
	return &out, nil
}

// ItemsByList returns all items belonging to a list in insertion order.
func (s *SQLStore) ItemsByList(ctx context.Context, listID int64) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx, s.q(
		`SELECT `+itemColumns+` FROM items WHERE list_id = ? ORDER BY id`), listID)
	if err != nil {
		return nil, classify("list items", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.ListID, &it.Title, &it.Description); err != nil {
			return nil, classify("scan item", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list items", err)
	}
	return items, nil
}

// GetItem returns the item with the given id, or ErrNotFound. Callers
// addressing through a list must check the item actually belongs to it.
func (s *SQLStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	var it models.Item
	err := s.db.QueryRowContext(ctx, s.q(
		`SELECT `+itemColumns+` FROM items WHERE id = ?`), id,
	).Scan(&it.ID, &it.ListID, &it.Title, &it.Description)
	if err != nil {
		return nil, classify("get item", err)
	}
	return &it, nil
}

// UpdateItem validates and fully replaces the mutable fields of an item. The
// owning list never changes.
func (s *SQLStore) UpdateItem(ctx context.Context, id int64, title, description string) (*models.Item, error) {
	current, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	item := &models.Item{ID: id, ListID: current.ListID, Title: title, Description: description}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	var out models.Item
	err = s.db.QueryRowContext(ctx, s.q(
		`UPDATE items SET title = ?, description = ?
		 WHERE id = ?
		 RETURNING `+itemColumns),
		title, description, id,
	).Scan(&out.ID, &out.ListID, &out.Title, &out.Description)
	if err != nil {
		return nil, classify("update item", err)
	}
	return &out, nil
}

// DeleteItem removes a single item.
func (s *SQLStore) DeleteItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM items WHERE id = ?`), id)
	if err != nil {
		return classify("delete item", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountItems returns the total number of items across all lists.
func (s *SQLStore) CountItems(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, classify("count items", err)
	}
	return n, nil
}
