package handler

import (
	"net/http"

	"pixel-canvas-server/internal/service"
	"pixel-canvas-server/pkg/logger"
	"pixel-canvas-server/pkg/response"
)

type ResetHandler struct {
	service *service.ResetService
	log     logger.Logger
}

func NewResetHandler(service *service.ResetService, log logger.Logger) *ResetHandler {
	return &ResetHandler{
		service: service,
		log:     log.WithComponent("reset"),
	}
}

func (h *ResetHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetFromSeed(r.Context()); err != nil {
		h.log.Errorf("error resetting canvas: %v", err)
		response.InternalError(w, "Failed to reset canvas")
		return
	}

	response.Success(w, service.ResetMessage)
}
