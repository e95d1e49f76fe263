package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mkbraam/wishd/internal/models"
	"github.com/mkbraam/wishd/internal/store"
	"github.com/mkbraam/wishd/internal/validate"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users    UserStore
	sessions *Sessions
	hasher   Hasher
	logger   *log.Logger
}

func NewHandler(users UserStore, sessions *Sessions, hasher Hasher, logger *log.Logger) *Handler {
	return &Handler{users: users, sessions: sessions, hasher: hasher, logger: logger}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Register creates a new user account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, err)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.Error("hash password", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Username, req.Email, hash)
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, verrs)
		return
	case errors.Is(err, store.ErrConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"message": "username already taken"})
		return
	case err != nil:
		h.logger.Error("create user", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login verifies credentials and opens a session. Unknown usernames and
// wrong passwords get the same answer.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	user, err := h.verifyLogin(r, &req)
	if errors.Is(err, ErrInvalidCredentials) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": ErrInvalidCredentials.Error()})
		return
	}
	if err != nil {
		h.logger.Error("login", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}

	_, cookie, err := h.sessions.Create(r.Context(), user)
	if err != nil {
		h.logger.Error("create session", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}

	http.SetCookie(w, cookie)
	writeJSON(w, http.StatusOK, user)
}

// verifyLogin resolves the username and checks the password, folding both
// failure modes into ErrInvalidCredentials.
func (h *Handler) verifyLogin(r *http.Request, req *models.LoginRequest) (*models.User, error) {
	user, err := h.users.GetUserByUsername(r.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !h.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Logout destroys the current session. Logging out without one is fine.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := h.sessions.Destroy(r.Context(), r)
	if err != nil {
		h.logger.Error("destroy session", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}

	http.SetCookie(w, cookie)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the currently authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := FromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "not authenticated"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}
