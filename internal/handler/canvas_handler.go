package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pixel-canvas-server/internal/domain"
	"pixel-canvas-server/internal/service"
	"pixel-canvas-server/pkg/logger"
	"pixel-canvas-server/pkg/response"
)

const maxPaintBodyBytes = 1 << 10

type CanvasHandler struct {
	service *service.CanvasService
	log     logger.Logger
}

func NewCanvasHandler(service *service.CanvasService, log logger.Logger) *CanvasHandler {
	return &CanvasHandler{
		service: service,
		log:     log.WithComponent("canvas"),
	}
}

func (h *CanvasHandler) List(w http.ResponseWriter, r *http.Request) {
	cells, err := h.service.ListCells(r.Context())
	if err != nil {
		h.log.Errorf("error fetching canvas: %v", err)
		response.InternalError(w, "Failed to fetch canvas")
		return
	}

	response.JSON(w, http.StatusOK, domain.CanvasResponse{Squares: cells})
}

func (h *CanvasHandler) Paint(w http.ResponseWriter, r *http.Request) {
	var req domain.PaintRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPaintBodyBytes)).Decode(&req); err != nil {
		h.log.Errorf("error decoding paint request: %v", err)
		response.InternalError(w, "Failed to update canvas")
		return
	}

	if _, err := h.service.Paint(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCoordinates):
			response.BadRequest(w, "Invalid coordinates")
		case errors.Is(err, service.ErrInvalidColor):
			response.BadRequest(w, "Invalid color format")
		default:
			h.log.Errorf("error updating canvas: %v", err)
			response.InternalError(w, "Failed to update canvas")
		}
		return
	}

	response.Success(w, "")
}
