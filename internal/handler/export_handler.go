package handler

import (
	"net/http"

	"pixel-canvas-server/internal/service"
	"pixel-canvas-server/pkg/logger"
	"pixel-canvas-server/pkg/response"
)

type ExportHandler struct {
	service *service.ExportService
	log     logger.Logger
}

func NewExportHandler(service *service.ExportService, log logger.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		log:     log.WithComponent("export"),
	}
}

func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.RenderPNG(r.Context())
	if err != nil {
		h.log.Errorf("error generating download: %v", err)
		response.InternalError(w, "Failed to generate download")
		return
	}

	response.Binary(w, service.ExportContentType, service.ExportFilename, data)
}
