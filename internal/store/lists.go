package store

import (
	"context"
	"fmt"

	"github.com/mkbraam/wishd/internal/keygen"
	"github.com/mkbraam/wishd/internal/models"
)

const listColumns = "id, key, is_private, title, description"

// CreateList validates and inserts a new list. The key is generated server
// side and immutable afterwards. Returns the authoritative row as written.
func (s *SQLStore) CreateList(ctx context.Context, isPrivate bool, title, description string) (*models.List, error) {
	key, err := keygen.NewToken()
	if err != nil {
		return nil, fmt.Errorf("generate list key: %w", err)
	}

	list := &models.List{Key: key, IsPrivate: isPrivate, Title: title, Description: description}
	if err := list.Validate(); err != nil {
		return nil, err
	}

	var out models.List
	err = s.db.QueryRowContext(ctx, s.q(
		`INSERT INTO lists (key, is_private, title, description)
		 VALUES (?, ?, ?, ?)
		 RETURNING `+listColumns),
		list.Key, list.IsPrivate, list.Title, list.Description,
	).Scan(&out.ID, &out.Key, &out.IsPrivate, &out.Title, &out.Description)
	if err != nil {
		return nil, classify("create list", err)
	}
	return &out, nil
}

// PublicLists returns every non-private list. Private lists never appear
// here; they are reachable only through their exact key.
func (s *SQLStore) PublicLists(ctx context.Context) ([]models.List, error) {
	rows, err := s.db.QueryContext(ctx, s.q(
		`SELECT `+listColumns+` FROM lists WHERE is_private = ? ORDER BY id`), false)
	if err != nil {
		return nil, classify("list lists", err)
	}
	defer rows.Close()

	lists := []models.List{}
	for rows.Next() {
		var l models.List
		if err := rows.Scan(&l.ID, &l.Key, &l.IsPrivate, &l.Title, &l.Description); err != nil {
			return nil, classify("scan list", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list lists", err)
	}
	return lists, nil
}

// GetListByKey returns the list with the given key, private or not, or
// ErrNotFound. A wrong key is absence, never a fault.
func (s *SQLStore) GetListByKey(ctx context.Context, key string) (*models.List, error) {
	var l models.List
	err := s.db.QueryRowContext(ctx, s.q(
		`SELECT `+listColumns+` FROM lists WHERE key = ?`), key,
	).Scan(&l.ID, &l.Key, &l.IsPrivate, &l.Title, &l.Description)
	if err != nil {
		return nil, classify("get list", err)
	}
	return &l, nil
}

// GetListByID returns the list with the given id, or ErrNotFound.
func (s *SQLStore) GetListByID(ctx context.Context, id int64) (*models.List, error) {
	var l models.List
	err := s.db.QueryRowContext(ctx, s.q(
		`SELECT `+listColumns+` FROM lists WHERE id = ?`), id,
	).Scan(&l.ID, &l.Key, &l.IsPrivate, &l.Title, &l.Description)
	if err != nil {
		return nil, classify("get list", err)
	}
	return &l, nil
}

// UpdateList validates and fully replaces the mutable fields of a list. The
// key is never touched.
func (s *SQLStore) UpdateList(ctx context.Context, id int64, isPrivate bool, title, description string) (*models.List, error) {
	list := &models.List{ID: id, IsPrivate: isPrivate, Title: title, Description: description}
	if err := list.Validate(); err != nil {
		return nil, err
	}

	var out models.List
	err := s.db.QueryRowContext(ctx, s.q(
		`UPDATE lists SET is_private = ?, title = ?, description = ?
		 WHERE id = ?
		 RETURNING `+listColumns),
		isPrivate, title, description, id,
	).Scan(&out.ID, &out.Key, &out.IsPrivate, &out.Title, &out.Description)
	if err != nil {
		return nil, classify("update list", err)
	}
	return &out, nil
}

// DeleteList removes a list. Its items go with it via the foreign-key
// cascade.
func (s *SQLStore) DeleteList(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM lists WHERE id = ?`), id)
	if err != nil {
		return classify("delete list", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountLists returns the total number of lists, private included.
func (s *SQLStore) CountLists(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lists`).Scan(&n); err != nil {
		return 0, classify("count lists", err)
	}
	return n, nil
}
