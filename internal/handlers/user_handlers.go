package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"taskmanager/internal/handlers/dto"
	"taskmanager/internal/logger"

	"go.uber.org/zap"
)

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAllUsers(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromUserList(users))
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "userId")
	if !ok {
		return
	}

	user, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromUser(user))
}

func (h *UserHandler) PostUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !checkContentType(r, "application/json") {
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: malformed request body",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if fields := validateRequest(request); fields != nil {
		logger.Warn("HTTP: validation failed", zap.Any("fields", fields))
		responseWithFields(w, http.StatusBadRequest, fields)
		return
	}

	user, err := h.users.CreateUser(r.Context(), request.Username)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: user created",
		zap.Int("user_id", user.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))
	responseWithJSON(w, http.StatusCreated, dto.FromUser(user))
}

func (h *UserHandler) UpdateUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "userId")
	if !ok {
		return
	}

	var request dto.UpdateUserRequest

	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: malformed request body",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if fields := validateRequest(request); fields != nil {
		logger.Warn("HTTP: validation failed", zap.Any("fields", fields))
		responseWithFields(w, http.StatusBadRequest, fields)
		return
	}

	user, err := h.users.UpdateUser(r.Context(), id, request.Username)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromUser(user))
}

func (h *UserHandler) DeleteUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "userId")
	if !ok {
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
