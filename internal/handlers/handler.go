package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"home_automation/internal/logger"
	"home_automation/internal/service"
)

// collector endpoints accept any of these; the controller posts.
var collectorMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.accessLog)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerCollectorRoutes(router)
	h.registerAPIRoutes(router)

	router.GET("/ws", h.wsConnect)

	// anything else gets the status page
	router.NoRoute(h.statusPage)

	return router
}

// Handler returns the router wrapped with permissive CORS so the status JSON
// can be read from a dashboard on another origin.
func (h *Handler) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(h.InitRoutes())
}

func (h *Handler) registerCollectorRoutes(r *gin.Engine) {
	for _, path := range h.services.Recorder.Paths() {
		for _, method := range collectorMethods {
			r.Handle(method, path, h.record)
		}
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/logs", h.getLogs)
		api.GET("/status", h.getStatus)
	}
}

// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}
