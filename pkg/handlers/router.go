package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every route onto a fresh gin engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Dashboard served from embedded FS
	r.StaticFS("/static", h.GetStaticFS())
	r.GET("/", h.Dashboard)
	r.GET("/dashboard", h.Dashboard)

	v1 := r.Group("/api/v1")
	v1.GET("/health", h.Health)
	v1.POST("/auth/login", h.Login)

	authed := v1.Group("")
	authed.Use(h.AuthMiddleware())
	{
		authed.GET("/auth/me", h.Me)

		authed.GET("/roster", h.ListRoster)
		authed.POST("/roster/shifts", h.CreateShift)
		authed.GET("/roster/shifts", h.ListShifts)
		authed.GET("/roster/shifts/:id", h.GetShift)
		authed.POST("/roster/assignments", h.CreateAssignment)
		authed.DELETE("/roster/assignments/:id", h.DeleteAssignment)

		authed.GET("/employees", h.ListEmployees)
		authed.POST("/employees", h.CreateEmployee)
		authed.DELETE("/employees/:id", h.DeleteEmployee)
	}

	r.NoRoute(func(c *gin.Context) {
		writeJSONError(c, http.StatusNotFound, codeNotFound, "Route not found")
	})

	return r
}
