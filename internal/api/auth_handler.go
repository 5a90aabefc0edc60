package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hanlearn/hanlearn-api/internal/api/shared"
	"github.com/hanlearn/hanlearn-api/internal/domain"
	"github.com/hanlearn/hanlearn-api/internal/service/auth"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userStore  store.UserStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with its dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		userStore:  userStore,
		jwtService: jwtService,
		hasher:     hasher,
		verifier:   verifier,
		logger:     logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

func newUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}
}

// Register handles POST /auth/register. It creates an account and returns
// an access token so the client is signed in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid registration details")
		return
	}

	user, err := domain.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	hashed, err := h.hasher.Hash(user.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create account", err)
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		respondStoreError(w, r, err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), auth.Claims{
		UserID:      user.ID,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate token", err)
		return
	}

	h.logger.Info("user registered", "user_id", user.ID)
	shared.RespondWithJSON(w, r, http.StatusCreated, authResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}

// Login handles POST /auth/login. Unknown usernames and wrong passwords
// produce the same response so the two cases cannot be distinguished.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.userStore.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondStoreError(w, r, err)
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), auth.Claims{
		UserID:      user.ID,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate token", err)
		return
	}

	h.logger.Debug("user logged in", "user_id", user.ID)
	shared.RespondWithJSON(w, r, http.StatusOK, authResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}

// Me handles GET /auth/me, returning the authenticated user's identity.
// The username and email come from the store so a stale token never
// reports stale identity data.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustClaims(w, r)
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}
