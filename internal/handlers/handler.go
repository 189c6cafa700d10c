package handlers

import (
	"course_service/internal/logger"
	"course_service/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
// Authentication is not attached per route group: the access filter runs
// globally and decides per request from its ordered rule table.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(h.requestID, h.requestLog, frameOptions, h.accessFilter)

	// Swagger UI (token-protected by the filter's rule table)
	router.GET("/swagger-ui/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Token issuance (unauthenticated)
	router.POST("/authenticate", h.authenticate)

	// Course API (protected)
	h.registerCourseRoutes(router)

	return router
}

func (h *Handler) registerCourseRoutes(r *gin.Engine) {
	courses := r.Group("/api/courses")
	{
		courses.GET("", h.getAllCourses)
		courses.GET("/course-titles", h.getCoursesByTitle)
		courses.GET("/:id", h.getCourseByID)
		courses.POST("", h.createCourse)
		courses.PUT("/:id", h.updateCourse)
		courses.DELETE("", h.deleteAllCourses)
		courses.DELETE("/:id", h.deleteCourseByID)
	}
}
