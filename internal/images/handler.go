// Package images exposes upload and retrieval of wishlist images. Bytes
// live in object storage; the images table records only the source URL.
package images

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/mkbraam/wishd/internal/models"
	"github.com/mkbraam/wishd/internal/store"
)

// maxUploadBytes bounds a single image upload.
const maxUploadBytes = 10 << 20

// ImageStore defines the interface for image row persistence.
type ImageStore interface {
	CreateImage(ctx context.Context, sourceURL *string) (*models.Image, error)
	GetImage(ctx context.Context, id int64) (*models.Image, error)
	DeleteImage(ctx context.Context, id int64) error
}

// FileStore defines the interface for image blob storage.
type FileStore interface {
	UploadImage(ctx context.Context, filename string, data []byte, contentType string) (string, string, error)
	DownloadImage(ctx context.Context, key string) ([]byte, string, error)
	RemoveImage(ctx context.Context, key string) error
}

// Handler holds image HTTP handlers.
type Handler struct {
	images ImageStore
	blobs  FileStore
	logger *log.Logger
}

func NewHandler(images ImageStore, blobs FileStore, logger *log.Logger) *Handler {
	return &Handler{images: images, blobs: blobs, logger: logger}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Create accepts a multipart "file" field, stores the bytes in object
// storage and records the resulting URL.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid multipart body"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "file field is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "unreadable upload"})
		return
	}

	_, srcURL, err := h.blobs.UploadImage(r.Context(), header.Filename, data, header.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("upload image", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}

	img, err := h.images.CreateImage(r.Context(), &srcURL)
	if err != nil {
		h.logger.Error("create image", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}

	w.Header().Set("Location", "/api/v1/images/"+strconv.FormatInt(img.ID, 10))
	writeJSON(w, http.StatusCreated, img)
}

// Show returns an image record.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	img, ok := h.imageFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, img)
}

// Content streams the stored bytes for an image that lives in our object
// storage.
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	img, ok := h.imageFromRequest(w, r)
	if !ok {
		return
	}
	if img.SourceURL == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Image has no content"})
		return
	}

	key, err := objectKey(*img.SourceURL)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Image has no content"})
		return
	}

	data, contentType, err := h.blobs.DownloadImage(r.Context(), key)
	if err != nil {
		h.logger.Error("download image", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// Destroy removes the image row and its stored object.
func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) {
	img, ok := h.imageFromRequest(w, r)
	if !ok {
		return
	}

	if img.SourceURL != nil {
		if key, err := objectKey(*img.SourceURL); err == nil {
			if err := h.blobs.RemoveImage(r.Context(), key); err != nil {
				h.logger.Warn("remove image object", "err", err)
			}
		}
	}

	if err := h.images.DeleteImage(r.Context(), img.ID); err != nil {
		h.logger.Error("delete image", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) imageFromRequest(w http.ResponseWriter, r *http.Request) (*models.Image, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Image not found"})
		return nil, false
	}

	img, err := h.images.GetImage(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Image not found"})
		return nil, false
	}
	if err != nil {
		h.logger.Error("get image", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return nil, false
	}
	return img, true
}

// objectKey recovers the storage key from a recorded source URL.
func objectKey(source string) (string, error) {
	u, err := url.Parse(source)
	if err != nil {
		return "", err
	}
	key := path.Base(u.Path)
	if key == "." || key == "/" || key == "" {
		return "", errors.New("no object key in url")
	}
	return key, nil
}
