package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pixel-canvas-server/internal/domain"
	"pixel-canvas-server/internal/service"
	"pixel-canvas-server/pkg/logger"
	"pixel-canvas-server/pkg/response"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	service  *service.AuthService
	validate *validator.Validate
	log      logger.Logger
}

func NewAuthHandler(service *service.AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		validate: validator.New(),
		log:      log.WithComponent("auth"),
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	resp, err := h.service.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminDisabled):
			response.NotFound(w, "Admin login disabled")
		case errors.Is(err, service.ErrInvalidCredentials):
			h.log.Warnf("rejected admin login from %s", r.RemoteAddr)
			response.Unauthorized(w, "Invalid credentials")
		default:
			h.log.Errorf("error during admin login: %v", err)
			response.InternalError(w, "Failed to log in")
		}
		return
	}

	response.JSON(w, http.StatusOK, resp)
}
