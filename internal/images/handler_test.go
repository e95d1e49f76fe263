package images_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkbraam/wishd/internal/images"
	"github.com/mkbraam/wishd/internal/models"
	"github.com/mkbraam/wishd/internal/testutil"
)

// memoryBlobs is a test double for the object store.
type memoryBlobs struct {
	objects map[string][]byte
	types   map[string]string
	seq     int
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memoryBlobs) UploadImage(_ context.Context, filename string, data []byte, contentType string) (string, string, error) {
	m.seq++
	key := fmt.Sprintf("obj-%d", m.seq)
	m.objects[key] = data
	m.types[key] = contentType
	return key, "http://blobs.local/wishd-images/" + key, nil
}

func (m *memoryBlobs) DownloadImage(_ context.Context, key string) ([]byte, string, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, "", fmt.Errorf("no object %q", key)
	}
	return data, m.types[key], nil
}

func (m *memoryBlobs) RemoveImage(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func newImageRouter(t *testing.T) (*chi.Mux, *memoryBlobs) {
	t.Helper()

	db, _ := testutil.NewStore(t)
	blobs := newMemoryBlobs()
	handler := images.NewHandler(db, blobs, log.New(io.Discard))

	r := chi.NewRouter()
	r.Post("/api/v1/images", handler.Create)
	r.Get("/api/v1/images/{id}", handler.Show)
	r.Get("/api/v1/images/{id}/content", handler.Content)
	r.Delete("/api/v1/images/{id}", handler.Destroy)
	return r, blobs
}

func upload(t *testing.T, r http.Handler, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImageUpload(t *testing.T) {
	r, blobs := newImageRouter(t)

	w := upload(t, r, "cat.png", []byte("png bytes"))
	require.Equal(t, http.StatusCreated, w.Code)

	var img models.Image
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &img))
	require.NotNil(t, img.SourceURL)
	assert.Contains(t, *img.SourceURL, "http://blobs.local/")
	assert.Equal(t, fmt.Sprintf("/api/v1/images/%d", img.ID), w.Header().Get("Location"))
	assert.Len(t, blobs.objects, 1)

	// Metadata and content both round-trip.
	show := httptest.NewRecorder()
	r.ServeHTTP(show, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/images/%d", img.ID), nil))
	require.Equal(t, http.StatusOK, show.Code)
	assert.Contains(t, show.Body.String(), *img.SourceURL)

	content := httptest.NewRecorder()
	r.ServeHTTP(content, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/images/%d/content", img.ID), nil))
	require.Equal(t, http.StatusOK, content.Code)
	assert.Equal(t, "png bytes", content.Body.String())
}

func TestImageUploadRequiresFile(t *testing.T) {
	r, _ := newImageRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImageNotFound(t *testing.T) {
	r, _ := newImageRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/images/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImageDestroy(t *testing.T) {
	r, blobs := newImageRouter(t)

	created := upload(t, r, "cat.png", []byte("png bytes"))
	require.Equal(t, http.StatusCreated, created.Code)
	var img models.Image
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &img))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/images/%d", img.ID), nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, blobs.objects, "stored object removed with the row")

	gone := httptest.NewRecorder()
	r.ServeHTTP(gone, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/images/%d", img.ID), nil))
	assert.Equal(t, http.StatusNotFound, gone.Code)
}
