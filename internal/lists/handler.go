// Package lists exposes the JSON API for wishlists and their items. Lists
// are addressed by opaque key only; numeric ids never appear on the wire.
package lists

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/mkbraam/wishd/internal/models"
	"github.com/mkbraam/wishd/internal/store"
	"github.com/mkbraam/wishd/internal/validate"
)

// WishlistStore defines the interface for list and item persistence.
type WishlistStore interface {
	CreateList(ctx context.Context, isPrivate bool, title, description string) (*models.List, error)
	PublicLists(ctx context.Context) ([]models.List, error)
	GetListByKey(ctx context.Context, key string) (*models.List, error)
	UpdateList(ctx context.Context, id int64, isPrivate bool, title, description string) (*models.List, error)
	DeleteList(ctx context.Context, id int64) error
	CountLists(ctx context.Context) (int64, error)

	CreateItem(ctx context.Context, listID int64, title, description string) (*models.Item, error)
	ItemsByList(ctx context.Context, listID int64) ([]models.Item, error)
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, id int64, title, description string) (*models.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	CountItems(ctx context.Context) (int64, error)
}

// Handler holds list and item HTTP handlers.
type Handler struct {
	store  WishlistStore
	logger *log.Logger
}

func NewHandler(store WishlistStore, logger *log.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a core error onto the API surface: field violations to
// 422, absence to 404, everything else to an opaque 500.
func (h *Handler) writeError(w http.ResponseWriter, err error, notFoundMsg string) {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, verrs)
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"message": notFoundMsg})
	default:
		h.logger.Error("storage failure", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
	}
}

// Index returns every public list. Private lists are reachable only via
// their exact key.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	lists, err := h.store.PublicLists(r.Context())
	if err != nil {
		h.writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

// Show returns a single list by key.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.GetListByKey(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeError(w, err, "List not found")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Create makes a new list and answers 201 with its location.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	list, err := h.store.CreateList(r.Context(), req.IsPrivate, req.Title, req.Description)
	if err != nil {
		h.writeError(w, err, "")
		return
	}

	w.Header().Set("Location", "/api/v1/lists/"+list.Key)
	writeJSON(w, http.StatusCreated, list)
}

// Update fully replaces a list's mutable fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.ListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	list, err := h.store.GetListByKey(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeError(w, err, "List not found")
		return
	}

	updated, err := h.store.UpdateList(r.Context(), list.ID, req.IsPrivate, req.Title, req.Description)
	if err != nil {
		h.writeError(w, err, "List not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Destroy deletes a list and, through the storage cascade, its items.
func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.GetListByKey(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeError(w, err, "List not found")
		return
	}

	if err := h.store.DeleteList(r.Context(), list.ID); err != nil {
		h.writeError(w, err, "List not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats reports the totals shown on the landing page.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	listCount, err := h.store.CountLists(r.Context())
	if err != nil {
		h.writeError(w, err, "")
		return
	}
	itemCount, err := h.store.CountItems(r.Context())
	if err != nil {
		h.writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"list_count": listCount,
		"item_count": itemCount,
	})
}

// listFromRequest resolves the {key} URL parameter for item routes.
func (h *Handler) listFromRequest(w http.ResponseWriter, r *http.Request) (*models.List, bool) {
	list, err := h.store.GetListByKey(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeError(w, err, "List not found")
		return nil, false
	}
	return list, true
}

// itemFromRequest resolves the {itemID} URL parameter and checks the item
// belongs to the list; an item reached through the wrong list is absent.
func (h *Handler) itemFromRequest(w http.ResponseWriter, r *http.Request, list *models.List) (*models.Item, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Item not found"})
		return nil, false
	}

	item, err := h.store.GetItem(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Item not found")
		return nil, false
	}
	if item.ListID != list.ID {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Item not found"})
		return nil, false
	}
	return item, true
}

// ItemIndex returns all items of a list.
func (h *Handler) ItemIndex(w http.ResponseWriter, r *http.Request) {
	list, ok := h.listFromRequest(w, r)
	if !ok {
		return
	}

	items, err := h.store.ItemsByList(r.Context(), list.ID)
	if err != nil {
		h.writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ItemCreate adds an item to a list.
func (h *Handler) ItemCreate(w http.ResponseWriter, r *http.Request) {
	list, ok := h.listFromRequest(w, r)
	if !ok {
		return
	}

	var req models.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	item, err := h.store.CreateItem(r.Context(), list.ID, req.Title, req.Description)
	if err != nil {
		h.writeError(w, err, "")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/lists/%s/items/%d", list.Key, item.ID))
	writeJSON(w, http.StatusCreated, item)
}

// ItemShow returns one item of a list.
func (h *Handler) ItemShow(w http.ResponseWriter, r *http.Request) {
	list, ok := h.listFromRequest(w, r)
	if !ok {
		return
	}
	item, ok := h.itemFromRequest(w, r, list)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// ItemUpdate fully replaces an item's mutable fields.
func (h *Handler) ItemUpdate(w http.ResponseWriter, r *http.Request) {
	list, ok := h.listFromRequest(w, r)
	if !ok {
		return
	}
	item, ok := h.itemFromRequest(w, r, list)
	if !ok {
		return
	}

	var req models.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	updated, err := h.store.UpdateItem(r.Context(), item.ID, req.Title, req.Description)
	if err != nil {
		h.writeError(w, err, "Item not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ItemDestroy deletes one item.
func (h *Handler) ItemDestroy(w http.ResponseWriter, r *http.Request) {
	list, ok := h.listFromRequest(w, r)
	if !ok {
		return
	}
	item, ok := h.itemFromRequest(w, r, list)
	if !ok {
		return
	}

	if err := h.store.DeleteItem(r.Context(), item.ID); err != nil {
		h.writeError(w, err, "Item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
