package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/goawx/internal/crypto"
	"github.com/iudanet/goawx/internal/models"
	"github.com/iudanet/goawx/internal/server/jwt"
	"github.com/iudanet/goawx/internal/server/storage"
	"github.com/iudanet/goawx/pkg/api"
)

// AuthHandler обрабатывает /me/ и выпуск personal access tokens
type AuthHandler struct {
	logger       *slog.Logger
	userStorage  storage.UserStorage
	tokenStorage storage.TokenStorage
	issuer       *jwt.Issuer
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, tokenStorage storage.TokenStorage, issuer *jwt.Issuer) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		issuer:       issuer,
	}
}

// Me обрабатывает GET /api/v2/me/
// Возвращает текущего пользователя в виде списка из одного элемента
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := GetPrincipal(r.Context())
	if !ok {
		SendDetail(w, h.logger, DetailNotAuthenticated, http.StatusUnauthorized)
		return
	}

	resp := api.MeResponse{
		Count:   1,
		Results: []map[string]any{p.User.Fields()},
	}
	sendJSON(w, h.logger, resp, http.StatusOK)
}

// CreateToken обрабатывает POST /api/v2/tokens/
// Выпускает JWT для текущего пользователя; в БД хранится только хеш
func (h *AuthHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, ok := GetPrincipal(ctx)
	if !ok {
		SendDetail(w, h.logger, DetailNotAuthenticated, http.StatusUnauthorized)
		return
	}

	// Тело необязательно
	var req api.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WarnContext(ctx, "failed to decode token request", slog.Any("error", err))
		SendDetail(w, h.logger, "JSON parse error - "+err.Error(), http.StatusBadRequest)
		return
	}

	scope := req.Scope
	if scope == "" {
		scope = ScopeWrite
	}
	if scope != ScopeRead && scope != ScopeWrite {
		SendDetail(w, h.logger, `scope must be "read" or "write"`, http.StatusBadRequest)
		return
	}
	// read токен не может выпустить write токен
	if p.Scope == ScopeRead && scope == ScopeWrite {
		SendDetail(w, h.logger, DetailPermissionDenied, http.StatusForbidden)
		return
	}

	signed, claims, err := h.issuer.Issue(p.User.ID, p.User.Username, scope)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		SendDetail(w, h.logger, DetailServerError, http.StatusInternalServerError)
		return
	}

	hash, err := crypto.HashToken(signed)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash token", slog.Any("error", err))
		SendDetail(w, h.logger, DetailServerError, http.StatusInternalServerError)
		return
	}

	now := time.Now()
	token := &models.AccessToken{
		JTI:         claims.ID,
		UserID:      p.User.ID,
		TokenHash:   hash,
		Description: req.Description,
		Scope:       scope,
		CreatedAt:   now,
	}
	if claims.ExpiresAt != nil {
		token.ExpiresAt = claims.ExpiresAt.Time
	}

	if err := h.tokenStorage.SaveToken(ctx, token); err != nil {
		h.logger.ErrorContext(ctx, "failed to save token", slog.Any("error", err))
		SendDetail(w, h.logger, DetailServerError, http.StatusInternalServerError)
		return
	}

	// Обновляем last_login
	if err := h.userStorage.UpdateLastLogin(ctx, p.User.ID, now); err != nil {
		// Не критичная ошибка, логируем но не прерываем
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "token issued",
		slog.String("username", p.User.Username),
		slog.Int64("token_id", token.ID),
		slog.String("scope", scope))

	resp := api.TokenResponse{
		ID:    token.ID,
		Token: signed,
		Scope: scope,
	}
	if !token.ExpiresAt.IsZero() {
		resp.Expires = token.ExpiresAt.UTC().Format(time.RFC3339)
	}
	sendJSON(w, h.logger, resp, http.StatusCreated)
}

// DeleteToken обрабатывает DELETE /api/v2/tokens/{id}/
// Пользователь может отозвать только свой токен
func (h *AuthHandler) DeleteToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, ok := GetPrincipal(ctx)
	if !ok {
		SendDetail(w, h.logger, DetailNotAuthenticated, http.StatusUnauthorized)
		return
	}

	tokenID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		SendDetail(w, h.logger, DetailNotFound, http.StatusNotFound)
		return
	}

	if err := h.tokenStorage.DeleteToken(ctx, tokenID, p.User.ID); err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			SendDetail(w, h.logger, DetailNotFound, http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete token", slog.Any("error", err))
		SendDetail(w, h.logger, DetailServerError, http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "token revoked",
		slog.String("username", p.User.Username),
		slog.Int64("token_id", tokenID))

	w.WriteHeader(http.StatusNoContent)
}
