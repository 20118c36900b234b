package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/arnavshah/roster-api/pkg/policy"
	"github.com/arnavshah/roster-api/pkg/roster"
	"github.com/gin-gonic/gin"
)

const (
	codeValidation      = "VALIDATION_ERROR"
	codeUnauthenticated = "UNAUTHENTICATED"
	codeUnauthorized    = "UNAUTHORIZED"
	codeForbidden       = "FORBIDDEN"
	codeInvalidShift    = "INVALID_SHIFT"
	codeOverlap         = "OVERLAP"
	codeConflict        = "CONFLICT"
	codeNotFound        = "NOT_FOUND"
	codeInternal        = "INTERNAL_ERROR"
)

// writeError maps a service error onto its HTTP status and error code
func writeError(c *gin.Context, err error) {
	switch {
	case roster.IsValidation(err):
		writeJSONError(c, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, roster.ErrShiftNotFound):
		writeJSONError(c, http.StatusBadRequest, codeInvalidShift, "Shift not found")
	case errors.Is(err, policy.ErrForbidden):
		writeJSONError(c, http.StatusForbidden, codeForbidden, "Insufficient role")
	case errors.Is(err, roster.ErrEmployeeNotFound):
		writeJSONError(c, http.StatusNotFound, codeNotFound, "Employee not found")
	case errors.Is(err, roster.ErrOverlapConflict):
		writeJSONError(c, http.StatusConflict, codeOverlap, "Time overlap with existing assignment")
	case errors.Is(err, roster.ErrEmailTaken):
		writeJSONError(c, http.StatusConflict, codeConflict, "Email already registered")
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		writeJSONError(c, http.StatusInternalServerError, codeInternal, "Something went wrong")
	}
}

func writeJSONError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"code": code, "message": message})
}

func abortWith(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"code": code, "message": message})
}
