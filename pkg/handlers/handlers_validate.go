package handlers

import (
	"fmt"
	"net/http"

	"github.com/arnavshah/roster-api/pkg/models"
	"github.com/arnavshah/roster-api/pkg/roster"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4"`
}

type createShiftRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Location  string `json:"location" binding:"required"`
	Position  string `json:"position"`
	Notes     string `json:"notes"`
}

func (r createShiftRequest) input() roster.CreateShiftInput {
	return roster.CreateShiftInput{
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Location:  r.Location,
		Position:  r.Position,
		Notes:     r.Notes,
	}
}

type createAssignmentRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	ShiftID    string `json:"shiftId" binding:"required"`
}

type createEmployeeRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Role     models.Role `json:"role" binding:"required,oneof=boss manager employee"`
	Password string      `json:"password" binding:"required,min=4"`
}

type rangeQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
	Week string `form:"week"`
}

func (q rangeQuery) bounds() (string, string, error) {
	if q.From == "" || q.To == "" {
		return "", "", fmt.Errorf("from and to are required: %w", roster.ErrInvalidField)
	}
	return q.From, q.To, nil
}

// bindJSON decodes the body into req, answering 400 on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeJSONError(c, http.StatusBadRequest, codeValidation, err.Error())
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		writeJSONError(c, http.StatusBadRequest, codeValidation, err.Error())
		return false
	}
	return true
}
