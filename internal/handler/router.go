package handler

import (
	"net/http"

	"pixel-canvas-server/internal/config"
	"pixel-canvas-server/internal/middleware"
	"pixel-canvas-server/internal/service"
	"pixel-canvas-server/pkg/logger"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Canvas    *CanvasHandler
	Export    *ExportHandler
	Reset     *ResetHandler
	Auth      *AuthHandler
	WebSocket *WebSocketHandler
}

func NewRouter(h *Handlers, authService *service.AuthService, cors config.CORSConfig, log logger.Logger) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORSMiddleware(
		cors.AllowedOrigins,
		cors.AllowedMethods,
		cors.AllowedHeaders,
	))

	r.HandleFunc("/canvas", h.Canvas.List).Methods("GET", "OPTIONS")
	r.HandleFunc("/canvas", h.Canvas.Paint).Methods("POST", "OPTIONS")
	r.HandleFunc("/download", h.Export.Download).Methods("GET", "OPTIONS")

	r.Handle("/reset", middleware.AdminMiddleware(authService)(http.HandlerFunc(h.Reset.Reset))).Methods("GET", "OPTIONS")
	r.HandleFunc("/admin/login", h.Auth.Login).Methods("POST", "OPTIONS")

	r.HandleFunc("/ws", h.WebSocket.HandleConnection)

	r.HandleFunc("/health", Health).Methods("GET")
	r.HandleFunc("/", Root).Methods("GET")

	return r
}
