package handler

import (
	"net/http"

	"pixel-canvas-server/pkg/response"
)

func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "pixel-canvas-server",
	})
}

func Root(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Pixel Canvas API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"/canvas":      "GET, POST",
			"/download":    "GET",
			"/reset":       "GET (Bearer token required when admin login is enabled)",
			"/ws":          "GET (websocket)",
			"/admin/login": "POST",
		},
	})
}
