package handlers

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/arnavshah/roster-api/pkg/auth"
	"github.com/arnavshah/roster-api/pkg/models"
	"github.com/arnavshah/roster-api/pkg/roster"
	"github.com/gin-gonic/gin"
)

//go:embed static/*
var staticEmbed embed.FS

const principalKey = "principal"

// Handler contains dependencies for the route handlers
type Handler struct {
	Roster    *roster.Service
	Employees auth.EmployeeFinder
	Tokens    *auth.TokenIssuer
}

// AuthMiddleware verifies the bearer token and stores the principal
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abortWith(c, http.StatusUnauthorized, codeUnauthenticated, "Missing token")
			return
		}

		p, err := h.Tokens.Verify(token)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, codeUnauthenticated, "Invalid or expired token")
			return
		}

		c.Set(principalKey, *p)
		c.Next()
	}
}

func principal(c *gin.Context) models.Principal {
	p, _ := c.MustGet(principalKey).(models.Principal)
	return p
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Login exchanges email and password for an access token
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	emp, err := auth.Authenticate(c.Request.Context(), h.Employees, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeJSONError(c, http.StatusUnauthorized, codeUnauthorized, "Invalid credentials")
			return
		}
		writeError(c, err)
		return
	}

	token, err := h.Tokens.Issue(emp)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user": models.Principal{
			ID:    emp.ID,
			Email: emp.Email,
			Name:  emp.Name,
			Role:  emp.Role,
		},
	})
}

// Me returns the authenticated principal
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, principal(c))
}

// CreateShift creates a shift (boss/manager)
func (h *Handler) CreateShift(c *gin.Context) {
	var req createShiftRequest
	if !bindJSON(c, &req) {
		return
	}

	shift, err := h.Roster.CreateShift(c.Request.Context(), principal(c), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// GetShift returns one shift
func (h *Handler) GetShift(c *gin.Context) {
	shift, err := h.Roster.GetShift(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}

// ListShifts returns every shift in a date range, assigned or not
func (h *Handler) ListShifts(c *gin.Context) {
	var q rangeQuery
	if !bindQuery(c, &q) {
		return
	}
	from, to, err := q.bounds()
	if err != nil {
		writeError(c, err)
		return
	}

	shifts, err := h.Roster.ListShifts(c.Request.Context(), principal(c), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// CreateAssignment assigns an employee to a shift, rejecting overlaps
func (h *Handler) CreateAssignment(c *gin.Context) {
	var req createAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.Roster.CreateAssignment(c.Request.Context(), principal(c), req.EmployeeID, req.ShiftID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// DeleteAssignment removes an assignment; unknown ids are not an error
func (h *Handler) DeleteAssignment(c *gin.Context) {
	deleted, err := h.Roster.DeleteAssignment(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": deleted})
}

// ListRoster returns roster entries for ?from=&to= or for the week of ?week=
func (h *Handler) ListRoster(c *gin.Context) {
	var q rangeQuery
	if !bindQuery(c, &q) {
		return
	}

	var (
		entries []models.RosterEntry
		err     error
	)
	if q.Week != "" {
		entries, err = h.Roster.ListWeek(c.Request.Context(), principal(c), q.Week)
	} else {
		var from, to string
		from, to, err = q.bounds()
		if err == nil {
			entries, err = h.Roster.ListRoster(c.Request.Context(), principal(c), from, to)
		}
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Dashboard serves the web dashboard from embedded files
func (h *Handler) Dashboard(c *gin.Context) {
	data, err := staticEmbed.ReadFile("static/index.html")
	if err != nil {
		writeJSONError(c, http.StatusNotFound, codeNotFound, "static/index.html not found in embedded FS")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// GetStaticFS returns the embedded filesystem for static assets
func (h *Handler) GetStaticFS() http.FileSystem {
	sub, err := fs.Sub(staticEmbed, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
