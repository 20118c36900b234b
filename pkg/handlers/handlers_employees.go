package handlers

import (
	"net/http"

	"github.com/arnavshah/roster-api/pkg/auth"
	"github.com/arnavshah/roster-api/pkg/roster"
	"github.com/gin-gonic/gin"
)

// ListEmployees returns the employee roster (boss/manager)
func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.Roster.ListEmployees(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

// CreateEmployee adds an employee account (boss)
func (h *Handler) CreateEmployee(c *gin.Context) {
	var req createEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	emp, err := h.Roster.CreateEmployee(c.Request.Context(), principal(c), roster.CreateEmployeeInput{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: hash,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, emp)
}

// DeleteEmployee removes an employee and their assignments (boss)
func (h *Handler) DeleteEmployee(c *gin.Context) {
	deleted, err := h.Roster.DeleteEmployee(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": deleted})
}
